package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestVersioned_Key(t *testing.T) {
	ctx := context.Background()

	t.Run("no generation yet", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("things:gen").RedisNil()

		key, err := cache.NewVersioned(rdb, "things").Key(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "things:v0", key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("current generation", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("things:gen").SetVal("7")

		key, err := cache.NewVersioned(rdb, "things").Key(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "things:v7", key)
	})

	t.Run("redis down", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("things:gen").SetErr(errors.New("connection refused"))

		_, err := cache.NewVersioned(rdb, "things").Key(ctx)

		assert.Error(t, err)
	})
}

func TestVersioned_Bump(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectIncr("things:gen").SetVal(8)

	assert.NoError(t, cache.NewVersioned(rdb, "things").Bump(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
