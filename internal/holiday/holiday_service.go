package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	holidayerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/holiday/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
)

// HolidaysByYearKey prefixes a versioned redis hash of year -> JSON list. Any
// write moves to a new generation because recurring holidays appear in every
// year.
const (
	HolidaysByYearKey = "holidays:by_year"
	cacheTTL          = 6 * time.Hour
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetByYear(ctx context.Context, year int) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	cache  *cache.Versioned
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService builds the holiday service. rdb may be nil to disable caching.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	s := &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
	if rdb != nil {
		s.cache = cache.NewVersioned(rdb, HolidaysByYearKey)
	}
	return s
}

func (s *service) Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	h := &Holiday{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Recurring:   req.Recurring,
	}
	if err := s.repo.WithTx(tx).Create(ctx, h); err != nil {
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*h), nil
}

// GetByYear lists the holidays falling in year. Recurring holidays are
// projected onto year from the year they were first created.
func (s *service) GetByYear(ctx context.Context, year int) ([]HolidayResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, holidayerrors.ErrInvalidYear
	}
	field := strconv.Itoa(year)

	// key stays empty when redis is off or unreachable; the fill then skips
	// the store.
	var key string
	if s.cache != nil {
		k, err := s.cache.Key(ctx)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("resolve holiday cache key failed", zap.Error(err))
		} else {
			key = k
			if cached, err := s.rdb.HGet(ctx, key, field).Result(); err == nil {
				var resp []HolidayResponse
				if json.Unmarshal([]byte(cached), &resp) == nil {
					return resp, nil
				}
			}
		}
	}

	v, err, _ := s.sf.Do(key+"|"+field, func() (any, error) {
		rows, err := s.repo.FindForYear(ctx, year)
		if err != nil {
			return nil, err
		}

		resp := projectYear(rows, year)
		if key != "" {
			s.store(ctx, key, field, resp)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]HolidayResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, holidayID)
	if err != nil {
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, holidayID)
	if err != nil {
		return HolidayResponse{}, err
	}

	h.Name = strings.TrimSpace(req.Name)
	h.Date = date
	h.Description = strings.TrimSpace(req.Description)
	h.Recurring = req.Recurring

	if err := qtx.Update(ctx, h); err != nil {
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return HolidayResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, holidayID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) store(ctx context.Context, key, field string, resp []HolidayResponse) {
	log := contextutil.GetLogger(ctx, s.logger)

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.HSet(ctx, key, field, data).Err(); err != nil {
		log.Warn("cache holidays failed", zap.String("year", field), zap.Error(err))
		return
	}
	if err := s.rdb.Expire(ctx, key, cacheTTL).Err(); err != nil {
		log.Warn("set holiday cache ttl failed", zap.Error(err))
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate holiday cache failed", zap.Error(err))
	}
}

func projectYear(rows []Holiday, year int) []HolidayResponse {
	res := make([]HolidayResponse, 0, len(rows))
	for _, h := range rows {
		switch {
		case h.Date.Year() == year:
		case h.Recurring && h.Date.Year() < year:
			h.Date = anniversary(h.Date, year)
		default:
			continue
		}
		res = append(res, mapToResponse(h))
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Date < res[j].Date })
	return res
}

// anniversary moves d into year. Feb 29 falls back to Feb 28 in common years.
func anniversary(d time.Time, year int) time.Time {
	day := d.Day()
	if d.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, d.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, holidayerrors.ErrInvalidDate
	}
	return t, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(dateLayout),
		Description: h.Description,
		Recurring:   h.Recurring,
	}
}
