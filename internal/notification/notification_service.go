package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/consumer"
	notificationerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/notification/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/contextutil"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/response"
)

type Service interface {
	consumer.Notifier
	ListMine(ctx context.Context, actor domain.Actor, q ListNotificationsQuery) ([]NotificationResponse, int64, error)
	UnreadCount(ctx context.Context, actor domain.Actor) (UnreadCountResponse, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
	MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// NotifyEmployee stores a notice for the employee's user account. Employees
// without a login are skipped, and a repeated dedup key is a no-op.
func (s *service) NotifyEmployee(ctx context.Context, notice consumer.Notice) error {
	log := contextutil.GetLogger(ctx, s.logger)

	userID, ok, err := s.repo.UserIDForEmployee(ctx, notice.EmployeeID)
	if err != nil {
		return err
	}
	if !ok {
		log.Info("notification skipped, employee has no user",
			zap.String("employee_id", notice.EmployeeID.String()),
			zap.String("kind", notice.Kind),
		)
		return nil
	}

	n := &Notification{
		ID:          uuid.New(),
		UserID:      userID,
		Kind:        notice.Kind,
		Title:       notice.Title,
		Body:        notice.Body,
		ReferenceID: notice.ReferenceID,
		DedupKey:    notice.DedupKey,
		CreatedAt:   s.now(),
	}
	if n.DedupKey == "" {
		n.DedupKey = n.ID.String()
	}

	created, err := s.repo.Insert(ctx, n)
	if err != nil {
		return err
	}
	if !created {
		log.Debug("duplicate notification ignored", zap.String("dedup_key", n.DedupKey))
	}
	return nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor, q ListNotificationsQuery) ([]NotificationResponse, int64, error) {
	q.Page, q.PageSize = response.NormalizePage(q.Page, q.PageSize)

	items, total, err := s.repo.FindByUser(ctx, actor.UserID, q.Unread, q.Page, q.PageSize)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]NotificationResponse, len(items))
	for i, n := range items {
		resp[i] = mapToResponse(n)
	}
	return resp, total, nil
}

func (s *service) UnreadCount(ctx context.Context, actor domain.Actor) (UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return UnreadCountResponse{}, err
	}
	return UnreadCountResponse{Unread: count}, nil
}

func (s *service) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	return s.repo.MarkRead(ctx, actor.UserID, notificationID, s.now())
}

func (s *service) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	return s.repo.MarkAllRead(ctx, actor.UserID, s.now())
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		Kind:        n.Kind,
		Title:       n.Title,
		Body:        n.Body,
		ReferenceID: n.ReferenceID,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
