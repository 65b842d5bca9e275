package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	autherrors "github.com/ismailgraphix/WorkSphere-sub000/internal/auth/errors"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/domain"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Role       string `json:"role"`
	TokenType  string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens. It satisfies
// middleware.TokenVerifier.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(cfg config.JWT) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *TokenManager) RefreshTTL() time.Duration { return m.refreshTTL }

// Issue returns a fresh access and refresh token pair for actor.
func (m *TokenManager) Issue(actor domain.Actor) (access, refresh string, err error) {
	access, err = m.sign(actor, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err = m.sign(actor, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

func (m *TokenManager) VerifyAccessToken(token string) (domain.Actor, error) {
	return m.verify(token, tokenTypeAccess)
}

func (m *TokenManager) ParseRefresh(token string) (domain.Actor, error) {
	actor, err := m.verify(token, tokenTypeRefresh)
	if errors.Is(err, autherrors.ErrInvalidToken) {
		return domain.Actor{}, autherrors.ErrInvalidRefreshToken
	}
	return actor, err
}

func (m *TokenManager) sign(actor domain.Actor, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    actor.UserID.String(),
		Role:      string(actor.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   actor.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if actor.EmployeeID != nil {
		claims.EmployeeID = actor.EmployeeID.String()
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) verify(tokenString, tokenType string) (domain.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, autherrors.ErrTokenExpired
		}
		return domain.Actor{}, autherrors.ErrInvalidToken
	}
	if !token.Valid || claims.TokenType != tokenType {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Actor{}, autherrors.ErrInvalidToken
	}

	actor := domain.Actor{UserID: userID, Role: role}
	if claims.EmployeeID != "" {
		empID, err := uuid.Parse(claims.EmployeeID)
		if err != nil {
			return domain.Actor{}, autherrors.ErrInvalidToken
		}
		actor.EmployeeID = &empID
	}
	return actor, nil
}
