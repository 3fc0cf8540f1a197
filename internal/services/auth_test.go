package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
)

const testJWTSecret = "test-secret"

func registerUser(t *testing.T, h *harness, username, password string) *types.User {
	t.Helper()
	u, err := NewUserService(h.db, h.log, h.users).Register(context.Background(), RegisterInput{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  password,
	})
	require.NoError(t, err)
	return u
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	h := newHarness(t)
	u := registerUser(t, h, "alice", "s3cret-pass")
	auth := NewAuthService(h.db, h.log, h.users, h.tokens, testJWTSecret, time.Hour)
	ctx := context.Background()

	token, err := auth.LoginUser(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	authed, err := auth.SetContextFromToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, ctxutil.ViewerID(authed))

	require.NoError(t, auth.LogoutUser(authed))
	_, err = auth.SetContextFromToken(ctx, token)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized), "logged out token must be rejected")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	registerUser(t, h, "bob", "right-pass")
	auth := NewAuthService(h.db, h.log, h.users, h.tokens, testJWTSecret, time.Hour)

	for _, tc := range []struct{ email, password string }{
		{"bob@example.com", "wrong-pass"},
		{"nobody@example.com", "right-pass"},
	} {
		_, err := auth.LoginUser(context.Background(), tc.email, tc.password)
		require.True(t, domainagg.IsCode(err, domainagg.CodeValidation))
		require.Contains(t, err.Error(), msgBadCredentials)
	}

	_, err := auth.LoginUser(context.Background(), "", "")
	e, ok := domainagg.As(err)
	require.True(t, ok)
	require.NotEmpty(t, e.Fields["email"])
	require.NotEmpty(t, e.Fields["password"])
}

func TestSetContextFromTokenRejectsForeignTokens(t *testing.T) {
	h := newHarness(t)
	auth := NewAuthService(h.db, h.log, h.users, h.tokens, testJWTSecret, time.Hour)
	ctx := context.Background()

	anon, err := auth.SetContextFromToken(ctx, "")
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, ctxutil.ViewerID(anon))

	_, err = auth.SetContextFromToken(ctx, "not-a-jwt")
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))

	// well-signed but never issued
	claims := JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = auth.SetContextFromToken(ctx, signed)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))

	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = auth.SetContextFromToken(ctx, other)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))
}

func TestLoginPrunesExpiredTokens(t *testing.T) {
	h := newHarness(t)
	registerUser(t, h, "carol", "pass-word")
	svc := NewAuthService(h.db, h.log, h.users, h.tokens, testJWTSecret, time.Hour).(*authService)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, err := svc.LoginUser(ctx, "carol@example.com", "pass-word")
	require.NoError(t, err)
	require.EqualValues(t, 1, h.countRows(t, &types.UserToken{}))

	svc.now = time.Now
	_, err = svc.LoginUser(ctx, "carol@example.com", "pass-word")
	require.NoError(t, err)
	require.EqualValues(t, 1, h.countRows(t, &types.UserToken{}))
}
