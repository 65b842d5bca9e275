package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/messaging/kafka/consumer"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/notification"
	notificationerrors "github.com/ismailgraphix/WorkSphere-sub000/internal/notification/errors"
	notificationMock "github.com/ismailgraphix/WorkSphere-sub000/internal/notification/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupServiceTest(t *testing.T) (notification.Service, *notificationMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := notificationMock.NewMockRepository(ctrl)
	return notification.NewService(repo), repo
}

func TestNotificationService_NotifyEmployee(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	notice := consumer.Notice{
		EmployeeID:  employeeID,
		Kind:        "payroll.paid",
		Title:       "Salary paid",
		Body:        "Your salary for 2025-01 has been paid",
		ReferenceID: "p-1",
		DedupKey:    "payroll.paid:p-1",
	}

	t.Run("stores for linked user", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		userID := uuid.New()

		repo.EXPECT().UserIDForEmployee(ctx, employeeID).Return(userID, true, nil)
		repo.EXPECT().Insert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n *notification.Notification) (bool, error) {
				assert.Equal(t, userID, n.UserID)
				assert.Equal(t, "payroll.paid:p-1", n.DedupKey)
				assert.Equal(t, "Salary paid", n.Title)
				assert.Nil(t, n.ReadAt)
				return true, nil
			})

		assert.NoError(t, svc.NotifyEmployee(ctx, notice))
	})

	t.Run("employee without user is skipped", func(t *testing.T) {
		svc, repo := setupServiceTest(t)

		repo.EXPECT().UserIDForEmployee(ctx, employeeID).Return(uuid.Nil, false, nil)

		assert.NoError(t, svc.NotifyEmployee(ctx, notice))
	})

	t.Run("duplicate is not an error", func(t *testing.T) {
		svc, repo := setupServiceTest(t)

		repo.EXPECT().UserIDForEmployee(ctx, employeeID).Return(uuid.New(), true, nil)
		repo.EXPECT().Insert(ctx, gomock.Any()).Return(false, nil)

		assert.NoError(t, svc.NotifyEmployee(ctx, notice))
	})

	t.Run("lookup failure is returned for retry", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		dbErr := errors.New("db down")

		repo.EXPECT().UserIDForEmployee(ctx, employeeID).Return(uuid.Nil, false, dbErr)

		assert.ErrorIs(t, svc.NotifyEmployee(ctx, notice), dbErr)
	})
}

func TestNotificationService_ListMine(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupServiceTest(t)
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}
	readAt := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)

	repo.EXPECT().FindByUser(ctx, actor.UserID, true, 1, 20).Return([]notification.Notification{
		{ID: uuid.New(), Kind: "leave.decided", Title: "Leave approved", CreatedAt: readAt},
		{ID: uuid.New(), Kind: "payroll.paid", Title: "Salary paid", CreatedAt: readAt, ReadAt: &readAt},
	}, int64(2), nil)

	resp, total, err := svc.ListMine(ctx, actor, notification.ListNotificationsQuery{Unread: true})

	assert.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, resp, 2)
	assert.Nil(t, resp[0].ReadAt)
	if assert.NotNil(t, resp[1].ReadAt) {
		assert.Equal(t, "2025-01-02T08:00:00Z", *resp[1].ReadAt)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}

	t.Run("invalid id", func(t *testing.T) {
		svc, _ := setupServiceTest(t)

		err := svc.MarkRead(ctx, actor, "nope")

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})

	t.Run("scoped to the caller", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		id := uuid.New()

		repo.EXPECT().MarkRead(ctx, actor.UserID, id, gomock.Any()).
			Return(notificationerrors.ErrNotificationNotFound)

		err := svc.MarkRead(ctx, actor, id.String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}
