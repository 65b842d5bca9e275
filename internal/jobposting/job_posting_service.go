package jobposting

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	jobpostingerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/jobposting/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/cache"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

// OpenPostingsKey prefixes the versioned cache of the public open list.
const (
	OpenPostingsKey = "job_postings:open"
	openTTL         = 10 * time.Minute
)

//go:generate mockgen -source=job_posting_service.go -destination=mock/job_posting_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateJobPostingRequest) (JobPostingResponse, error)
	GetAll(ctx context.Context, q ListJobPostingsQuery) ([]JobPostingResponse, int64, error)
	GetOpen(ctx context.Context) ([]JobPostingResponse, error)
	GetByID(ctx context.Context, id string) (JobPostingResponse, error)
	Update(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	cache  *cache.Versioned
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the job posting service. The public open list is cached
// in rdb when it is not nil.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("jobposting.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobposting.service")
	}
	s := &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, now: time.Now, logger: l}
	if rdb != nil {
		s.cache = cache.NewVersioned(rdb, OpenPostingsKey)
	}
	return s
}

func (s *service) Create(ctx context.Context, actor domain.Actor, req CreateJobPostingRequest) (JobPostingResponse, error) {
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return JobPostingResponse{}, jobpostingerrors.ErrInvalidDepartmentID
	}
	closing, err := s.parseClosingDate(req.ClosingDate, StatusOpen)
	if err != nil {
		return JobPostingResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureDepartment(ctx, qtx, departmentID); err != nil {
		return JobPostingResponse{}, err
	}

	post := &JobPosting{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(req.Title),
		DepartmentID:   departmentID,
		Description:    strings.TrimSpace(req.Description),
		Location:       strings.TrimSpace(req.Location),
		EmploymentType: req.EmploymentType,
		Status:         StatusOpen,
		ClosingDate:    closing,
		CreatedBy:      actor.UserID,
	}

	if err := qtx.Create(ctx, post); err != nil {
		return JobPostingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobPostingResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*post), nil
}

func (s *service) GetAll(ctx context.Context, q ListJobPostingsQuery) ([]JobPostingResponse, int64, error) {
	filter := ListFilter{
		Q:        strings.TrimSpace(q.Q),
		Status:   strings.ToUpper(q.Status),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	filter.Page, filter.PageSize = response.NormalizePage(filter.Page, filter.PageSize)
	if filter.Status != "" && filter.Status != StatusOpen && filter.Status != StatusClosed {
		return nil, 0, jobpostingerrors.ErrInvalidStatusFilter
	}
	if q.DepartmentID != "" {
		id, err := uuid.Parse(q.DepartmentID)
		if err != nil {
			return nil, 0, jobpostingerrors.ErrInvalidDepartmentID
		}
		filter.DepartmentID = &id
	}

	posts, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(posts), total, nil
}

// GetOpen serves the public careers list. Cached entries whose closing date
// passed since they were stored are dropped on read.
func (s *service) GetOpen(ctx context.Context) ([]JobPostingResponse, error) {
	today := s.today()

	var key string
	if s.cache != nil {
		k, err := s.cache.Key(ctx)
		if err != nil {
			contextutil.GetLogger(ctx, s.logger).Warn("resolve open job postings key failed", zap.Error(err))
		} else {
			key = k
			if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
				var resp []JobPostingResponse
				if json.Unmarshal([]byte(cached), &resp) == nil {
					return dropExpired(resp, today), nil
				}
			}
		}
	}

	v, err, _ := s.sf.Do(OpenPostingsKey+"|"+key, func() (any, error) {
		posts, err := s.repo.FindOpen(ctx, today)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(posts)
		if key != "" {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, key, data, openTTL).Err(); err != nil {
					contextutil.GetLogger(ctx, s.logger).Warn("cache open job postings failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]JobPostingResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (JobPostingResponse, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return JobPostingResponse{}, jobpostingerrors.ErrInvalidJobPostingID
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return JobPostingResponse{}, err
	}
	return mapToResponse(*post), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateJobPostingRequest) (JobPostingResponse, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return JobPostingResponse{}, jobpostingerrors.ErrInvalidJobPostingID
	}
	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return JobPostingResponse{}, jobpostingerrors.ErrInvalidDepartmentID
	}
	closing, err := s.parseClosingDate(req.ClosingDate, req.Status)
	if err != nil {
		return JobPostingResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return JobPostingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	post, err := qtx.FindByID(ctx, postID)
	if err != nil {
		return JobPostingResponse{}, err
	}

	if post.DepartmentID != departmentID {
		if err := ensureDepartment(ctx, qtx, departmentID); err != nil {
			return JobPostingResponse{}, err
		}
	}

	post.Title = strings.TrimSpace(req.Title)
	post.DepartmentID = departmentID
	post.Department = nil
	post.Description = strings.TrimSpace(req.Description)
	post.Location = strings.TrimSpace(req.Location)
	post.EmploymentType = req.EmploymentType
	post.Status = req.Status
	post.ClosingDate = closing

	if err := qtx.Update(ctx, post); err != nil {
		return JobPostingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return JobPostingResponse{}, err
	}

	s.invalidate(ctx)
	return mapToResponse(*post), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	postID, err := uuid.Parse(id)
	if err != nil {
		return jobpostingerrors.ErrInvalidJobPostingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, postID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("invalidate open job postings failed", zap.Error(err))
	}
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClosingDate accepts an empty value as "no closing date". An open
// posting cannot close before today.
func (s *service) parseClosingDate(v, status string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, jobpostingerrors.ErrInvalidClosingDate
	}
	if status == StatusOpen && t.Before(s.today()) {
		return nil, jobpostingerrors.ErrClosingDateInPast
	}
	return &t, nil
}

func ensureDepartment(ctx context.Context, repo Repository, id uuid.UUID) error {
	ok, err := repo.DepartmentExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return jobpostingerrors.ErrDepartmentNotFound
	}
	return nil
}

func dropExpired(posts []JobPostingResponse, today time.Time) []JobPostingResponse {
	cutoff := today.Format(dateLayout)
	res := posts[:0]
	for _, p := range posts {
		if p.ClosingDate != nil && *p.ClosingDate < cutoff {
			continue
		}
		res = append(res, p)
	}
	return res
}

func mapToResponse(post JobPosting) JobPostingResponse {
	resp := JobPostingResponse{
		ID:             post.ID.String(),
		Title:          post.Title,
		DepartmentID:   post.DepartmentID.String(),
		Description:    post.Description,
		Location:       post.Location,
		EmploymentType: post.EmploymentType,
		Status:         post.Status,
		CreatedAt:      post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      post.UpdatedAt.Format(time.RFC3339),
	}
	if post.Department != nil {
		resp.DepartmentName = post.Department.Name
	}
	if post.ClosingDate != nil {
		v := post.ClosingDate.Format(dateLayout)
		resp.ClosingDate = &v
	}
	return resp
}

func mapToListResponse(posts []JobPosting) []JobPostingResponse {
	resp := make([]JobPostingResponse, len(posts))
	for i, post := range posts {
		resp[i] = mapToResponse(post)
	}
	return resp
}
