package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const msgBadCredentials = "Unable to log in with provided credentials."

type JWTClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	// LoginUser checks the credentials and returns a freshly issued access token.
	LoginUser(ctx context.Context, email, password string) (string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	now           func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	if accessTTL <= 0 {
		accessTTL = 30 * 24 * time.Hour
	}
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		now:           time.Now,
	}
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	const op = "Auth.Token.Login"
	email = strings.TrimSpace(email)
	fields := domainagg.FieldErrors{}
	if email == "" {
		fields.Add("email", msgFieldRequired)
	}
	if password == "" {
		fields.Add("password", msgFieldRequired)
	}
	if err := domainagg.NewValidation(op, fields); err != nil {
		return "", err
	}

	users, err := as.userRepo.GetByEmails(dbctx.Context{Ctx: ctx}, []string{email})
	if err != nil {
		return "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return "", domainagg.NewError(domainagg.CodeValidation, op, msgBadCredentials, nil)
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domainagg.NewError(domainagg.CodeValidation, op, msgBadCredentials, nil)
	}

	var accessToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := as.userTokenRepo.DeleteExpired(inner, as.now()); err != nil {
			return fmt.Errorf("failed to prune expired tokens: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token error: %w", err)
		}
		userToken := &types.UserToken{
			UserID:      user.ID,
			AccessToken: tok,
			ExpiresAt:   as.now().Add(as.accessTTL),
		}
		if _, err := as.userTokenRepo.Create(inner, []*types.UserToken{userToken}); err != nil {
			as.log.Warn("Create user token error", "error", err)
			return fmt.Errorf("create user token error: %w", err)
		}
		accessToken = tok
		return nil
	}); err != nil {
		return "", err
	}
	return accessToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	const op = "Auth.Token.Logout"
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		as.log.Warn("No token in request data")
		return domainagg.Unauthorized(op, "Authentication credentials were not provided.")
	}
	if _, err := as.userTokenRepo.FullDeleteByAccessTokens(dbctx.Context{Ctx: ctx}, []string{rd.TokenString}); err != nil {
		as.log.Warn("Error deleting user token", "error", err)
		return fmt.Errorf("error deleting user token: %w", err)
	}
	return nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken attaches the caller identity to ctx. An empty token
// leaves ctx anonymous; a token that fails to parse or was logged out is rejected.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "Auth.Token.Resolve"
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, domainagg.NewError(domainagg.CodeUnauthorized, op, "Invalid token.", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, domainagg.Unauthorized(op, "Invalid token.")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, domainagg.NewError(domainagg.CodeUnauthorized, op, "Invalid token.", err)
	}
	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		as.log.Warn("Error fetching user token by access token", "error", err)
		return ctx, fmt.Errorf("failed to fetch user token by access token: %w", err)
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return ctx, domainagg.Unauthorized(op, "Invalid token.")
	}
	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

// HashPassword bcrypts a plaintext password with the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domainagg.NewError(domainagg.CodeValidation, "Users.Password.Hash", "Password is too long.", err)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}
