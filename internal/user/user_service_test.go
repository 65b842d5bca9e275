package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/user"
	usererrors "github.com/ismailgraphix/WorkSphere-sub000/internal/user/errors"
	mock_user "github.com/ismailgraphix/WorkSphere-sub000/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) (*mock_user.MockRepository, user.Service) {
	ctrl := gomock.NewController(t)
	mockRepo := mock_user.NewMockRepository(ctrl)
	return mockRepo, user.NewService(mockRepo)
}

func adminActor() domain.Actor {
	return domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)
		empID := uuid.New()

		mockRepo.EXPECT().
			FindAll(gomock.Any(), "john").
			Return([]user.User{
				{
					ID:         uuid.New(),
					EmployeeID: &empID,
					Email:      "john@worksphere.io",
					Role:       "EMPLOYEE",
					IsActive:   true,
					Employee:   &user.UserEmployee{ID: empID, EmployeeNumber: "EMP-000001", FullName: "John Doe"},
				},
			}, nil)

		res, err := svc.GetAll(ctx, "  john ")

		assert.NoError(t, err)
		assert.Len(t, res, 1)
		assert.Equal(t, "john@worksphere.io", res[0].Email)
		assert.Equal(t, "EMP-000001", res[0].EmployeeNumber)
		assert.Equal(t, empID.String(), *res[0].EmployeeID)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo, svc := setup(t)
		mockRepo.EXPECT().FindAll(gomock.Any(), "").Return(nil, errors.New("db error"))

		res, err := svc.GetAll(ctx, "")

		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		_, svc := setup(t)
		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo, svc := setup(t)
		id := uuid.New()
		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(nil, usererrors.ErrUserNotFound)

		_, err := svc.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and normalizes email", func(t *testing.T) {
		mockRepo, svc := setup(t)
		empID := uuid.New().String()

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "jane@worksphere.io", u.Email)
				assert.Equal(t, "HR", u.Role)
				assert.True(t, u.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
				u.ID = uuid.New()
				return nil
			})

		res, err := svc.Create(ctx, user.CreateUserRequest{
			EmployeeID: &empID,
			Name:       "Jane",
			Email:      " Jane@WorkSphere.io ",
			Password:   "secret123",
			Role:       "HR",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, empID, *res.EmployeeID)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		_, svc := setup(t)
		bad := "nope"
		_, err := svc.Create(ctx, user.CreateUserRequest{EmployeeID: &bad, Email: "a@b.io", Password: "secret123", Role: "EMPLOYEE"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidEmployeeID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo, svc := setup(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usererrors.ErrUserAlreadyExists)

		_, err := svc.Create(ctx, user.CreateUserRequest{Name: "A", Email: "a@b.io", Password: "secret123", Role: "EMPLOYEE"})
		assert.ErrorIs(t, err, usererrors.ErrUserAlreadyExists)
	})
}

func TestUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)
		id := uuid.New()
		mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, Role: "EMPLOYEE"}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "HR", u.Role)
				return nil
			})

		assert.NoError(t, svc.UpdateRole(ctx, adminActor(), id.String(), "HR"))
	})

	t.Run("invalid role", func(t *testing.T) {
		_, svc := setup(t)
		err := svc.UpdateRole(ctx, adminActor(), uuid.New().String(), "ROOT")
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		_, svc := setup(t)
		actor := adminActor()
		err := svc.UpdateRole(ctx, actor, actor.UserID.String(), "EMPLOYEE")
		assert.ErrorIs(t, err, usererrors.ErrSelfModification)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	mockRepo, svc := setup(t)
	id := uuid.New()

	mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id, IsActive: true}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.False(t, u.IsActive)
			return nil
		})

	assert.NoError(t, svc.ToggleStatus(ctx, adminActor(), id.String(), false))
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass123"), bcrypt.MinCost)

	t.Run("wrong current password", func(t *testing.T) {
		mockRepo, svc := setup(t)
		actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}
		mockRepo.EXPECT().FindByID(gomock.Any(), actor.UserID).Return(&user.User{ID: actor.UserID, Password: string(hashed)}, nil)

		err := svc.ChangePassword(ctx, actor, "wrong", "newpass123")
		assert.ErrorIs(t, err, usererrors.ErrWrongPassword)
	})

	t.Run("success", func(t *testing.T) {
		mockRepo, svc := setup(t)
		actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee}
		mockRepo.EXPECT().FindByID(gomock.Any(), actor.UserID).Return(&user.User{ID: actor.UserID, Password: string(hashed)}, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass123")))
				return nil
			})

		assert.NoError(t, svc.ChangePassword(ctx, actor, "oldpass123", "newpass123"))
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	mockRepo, svc := setup(t)
	id := uuid.New()
	mockRepo.EXPECT().FindByID(gomock.Any(), id).Return(&user.User{ID: id}, nil)
	mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.ResetPassword(context.Background(), id.String(), "resetpass1"))
}
