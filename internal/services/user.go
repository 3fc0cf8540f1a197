package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dataagg "github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+([_.-]?[a-zA-Z0-9])*$`)

const reservedUsername = "me"

var fieldValidator = validator.New()

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	List(dbc dbctx.Context, offset, limit int) ([]*types.User, int64, error)
	Get(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
	GetMe(dbc dbctx.Context) (*types.User, error)
	SetPassword(ctx context.Context, currentPassword, newPassword string) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
	}
}

func (us *userService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "Users.User.Register"
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	fields := validateRegistration(in)
	dbc := dbctx.Context{Ctx: ctx}
	if len(fields["email"]) == 0 {
		exists, err := us.userRepo.EmailExists(dbc, in.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if exists {
			fields.Add("email", "A user with that email already exists.")
		}
	}
	if len(fields["username"]) == 0 {
		exists, err := us.userRepo.UsernameExists(dbc, in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if exists {
			fields.Add("username", "A user with that username already exists.")
		}
	}
	if err := domainagg.NewValidation(op, fields); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &types.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
	}
	if _, err := us.userRepo.Create(dbc, []*types.User{u}); err != nil {
		mapped := dataagg.MapError(op, err)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			// lost a race with a concurrent registration
			fields := domainagg.FieldErrors{}
			fields.Add("username", "A user with that username or email already exists.")
			return nil, domainagg.NewValidation(op, fields)
		}
		us.log.Error("Failed to create user", "error", err)
		return nil, mapped
	}
	us.log.Info("User registered", "user_id", u.ID)
	return u, nil
}

func validateRegistration(in RegisterInput) domainagg.FieldErrors {
	fields := domainagg.FieldErrors{}
	switch {
	case in.Email == "":
		fields.Add("email", msgFieldRequired)
	case len(in.Email) > user.EmailMaxLength:
		fields.Add("email", fmt.Sprintf("Ensure this field has no more than %d characters.", user.EmailMaxLength))
	case fieldValidator.Var(in.Email, "email") != nil:
		fields.Add("email", "Enter a valid email address.")
	}
	switch {
	case in.Username == "":
		fields.Add("username", msgFieldRequired)
	case len(in.Username) > user.UsernameMaxLength:
		fields.Add("username", fmt.Sprintf("Ensure this field has no more than %d characters.", user.UsernameMaxLength))
	case strings.EqualFold(in.Username, reservedUsername):
		fields.Add("username", fmt.Sprintf("Username %q is reserved.", reservedUsername))
	case !usernamePattern.MatchString(in.Username):
		fields.Add("username", "Enter a valid username.")
	}
	for field, val := range map[string]string{"first_name": in.FirstName, "last_name": in.LastName} {
		switch {
		case val == "":
			fields.Add(field, msgFieldRequired)
		case len([]rune(val)) > user.NameMaxLength:
			fields.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", user.NameMaxLength))
		}
	}
	if msg := passwordProblem(in.Password); msg != "" {
		fields.Add("password", msg)
	}
	return fields
}

func passwordProblem(password string) string {
	switch {
	case password == "":
		return msgFieldRequired
	case len(password) > user.PasswordMaxBytes:
		return fmt.Sprintf("Ensure this field has no more than %d bytes.", user.PasswordMaxBytes)
	}
	return ""
}

func (us *userService) List(dbc dbctx.Context, offset, limit int) ([]*types.User, int64, error) {
	total, err := us.userRepo.Count(dbc)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	users, err := us.userRepo.List(dbc, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (us *userService) Get(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil {
		return nil, domainagg.NotFound("Users.User.Get", "Not found.")
	}
	return u, nil
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	rd := ctxutil.GetRequestData(dbc.Ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		us.log.Warn("Request data not set in context")
		return nil, domainagg.Unauthorized("Users.User.Me", "Authentication credentials were not provided.")
	}
	return us.Get(dbc, rd.UserID)
}

func (us *userService) SetPassword(ctx context.Context, currentPassword, newPassword string) error {
	const op = "Users.User.SetPassword"
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return domainagg.Unauthorized(op, "Authentication credentials were not provided.")
	}
	fields := domainagg.FieldErrors{}
	if currentPassword == "" {
		fields.Add("current_password", msgFieldRequired)
	}
	if msg := passwordProblem(newPassword); msg != "" {
		fields.Add("new_password", msg)
	}
	if err := domainagg.NewValidation(op, fields); err != nil {
		return err
	}

	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		u, err := us.userRepo.GetByID(inner, rd.UserID)
		if err != nil {
			return fmt.Errorf("error fetching user: %w", err)
		}
		if u == nil {
			return domainagg.NotFound(op, "Not found.")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
			fields := domainagg.FieldErrors{}
			fields.Add("current_password", "Invalid password.")
			return domainagg.NewValidation(op, fields)
		}
		hashed, err := HashPassword(newPassword)
		if err != nil {
			return err
		}
		return us.userRepo.UpdatePassword(inner, u.ID, hashed)
	})
}
