package auth_test

import (
	"testing"
	"time"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/auth"
	autherrors "github.com/ismailgraphix/WorkSphere-sub000/internal/auth/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenManager(access time.Duration) *auth.TokenManager {
	return auth.NewTokenManager(config.JWT{
		Secret:     "test-secret-with-enough-length",
		AccessTTL:  access,
		RefreshTTL: time.Hour,
	})
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTokenManager(time.Minute)
	empID := uuid.New()
	actor := domain.Actor{UserID: uuid.New(), EmployeeID: &empID, Role: domain.RoleHR}

	access, refresh, err := tm.Issue(actor)
	require.NoError(t, err)

	got, err := tm.VerifyAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, got.UserID)
	assert.Equal(t, domain.RoleHR, got.Role)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, empID, *got.EmployeeID)

	fromRefresh, err := tm.ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, fromRefresh.UserID)
}

func TestTokenManager_RejectsWrongTokenType(t *testing.T) {
	tm := newTokenManager(time.Minute)
	access, refresh, err := tm.Issue(domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee})
	require.NoError(t, err)

	_, err = tm.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)

	_, err = tm.ParseRefresh(access)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := newTokenManager(-time.Minute)
	access, _, err := tm.Issue(domain.Actor{UserID: uuid.New(), Role: domain.RoleEmployee})
	require.NoError(t, err)

	_, err = tm.VerifyAccessToken(access)
	assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
}

func TestTokenManager_ForeignSecret(t *testing.T) {
	other := auth.NewTokenManager(config.JWT{Secret: "another-secret-of-some-length", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	access, _, err := other.Issue(domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = newTokenManager(time.Minute).VerifyAccessToken(access)
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
