package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Versioned namespaces a cached value by a generation counter. Writers bump
// the counter instead of deleting the value. A fill stores under the
// generation it read before loading, so a fill that raced a write lands in a
// key no reader asks for again. Old generations age out through their TTL.
type Versioned struct {
	rdb    *redis.Client
	prefix string
}

func NewVersioned(rdb *redis.Client, prefix string) *Versioned {
	return &Versioned{rdb: rdb, prefix: prefix}
}

func GenerationKey(prefix string) string {
	return prefix + ":gen"
}

func VersionKey(prefix string, gen int64) string {
	return prefix + ":v" + strconv.FormatInt(gen, 10)
}

// Key resolves the data key of the current generation.
func (v *Versioned) Key(ctx context.Context) (string, error) {
	gen, err := v.rdb.Get(ctx, GenerationKey(v.prefix)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return VersionKey(v.prefix, gen), nil
}

// Bump moves readers to a fresh generation.
func (v *Versioned) Bump(ctx context.Context) error {
	return v.rdb.Incr(ctx, GenerationKey(v.prefix)).Err()
}
