package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestRegisterValidation(t *testing.T) {
	h := newHarness(t)
	svc := NewUserService(h.db, h.log, h.users)
	registerUser(t, h, "taken", "pw-123456")

	valid := RegisterInput{Email: "new@example.com", Username: "newbie", FirstName: "N", LastName: "B", Password: "pw"}
	cases := []struct {
		name   string
		mutate func(in *RegisterInput)
		field  string
	}{
		{"reserved username", func(in *RegisterInput) { in.Username = "me" }, "username"},
		{"bad username", func(in *RegisterInput) { in.Username = "bad name!" }, "username"},
		{"double separator", func(in *RegisterInput) { in.Username = "a__b" }, "username"},
		{"long username", func(in *RegisterInput) { in.Username = strings.Repeat("a", 150) }, "username"},
		{"duplicate username", func(in *RegisterInput) { in.Username = "taken" }, "username"},
		{"duplicate email", func(in *RegisterInput) { in.Email = "TAKEN@example.com" }, "email"},
		{"bad email", func(in *RegisterInput) { in.Email = "nope" }, "email"},
		{"email without domain", func(in *RegisterInput) { in.Email = "a@" }, "email"},
		{"missing first name", func(in *RegisterInput) { in.FirstName = " " }, "first_name"},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, "password"},
		{"password past bcrypt limit", func(in *RegisterInput) { in.Password = strings.Repeat("p", 80) }, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Register(context.Background(), in)
			e, ok := domainagg.As(err)
			require.True(t, ok, "got %v", err)
			require.Equal(t, domainagg.CodeValidation, e.Code)
			require.NotEmpty(t, e.Fields[tc.field])
		})
	}

	u, err := svc.Register(context.Background(), valid)
	require.NoError(t, err)
	require.NotEqual(t, "pw", u.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("pw")))
}

func TestUserGetListAndMe(t *testing.T) {
	h := newHarness(t)
	svc := NewUserService(h.db, h.log, h.users)
	zed := registerUser(t, h, "zed", "pw")
	amy := registerUser(t, h, "amy", "pw")
	ctx := context.Background()

	users, total, err := svc.List(dbctx.Context{Ctx: ctx}, 0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, users, 1)
	require.Equal(t, amy.ID, users[0].ID)

	got, err := svc.Get(dbctx.Context{Ctx: ctx}, zed.ID)
	require.NoError(t, err)
	require.Equal(t, "zed", got.Username)

	_, err = svc.Get(dbctx.Context{Ctx: ctx}, uuid.New())
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	me, err := svc.GetMe(dbctx.Context{Ctx: asUser(ctx, zed)})
	require.NoError(t, err)
	require.Equal(t, zed.ID, me.ID)

	_, err = svc.GetMe(dbctx.Context{Ctx: ctx})
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))
}

func TestSetPassword(t *testing.T) {
	h := newHarness(t)
	svc := NewUserService(h.db, h.log, h.users)
	u := registerUser(t, h, "dana", "old-pass")
	ctx := asUser(context.Background(), u)

	err := svc.SetPassword(ctx, "wrong", "new-pass")
	e, ok := domainagg.As(err)
	require.True(t, ok)
	require.NotEmpty(t, e.Fields["current_password"])

	err = svc.SetPassword(ctx, "old-pass", strings.Repeat("p", 73))
	e, ok = domainagg.As(err)
	require.True(t, ok, "got %v", err)
	require.Equal(t, domainagg.CodeValidation, e.Code)
	require.NotEmpty(t, e.Fields["new_password"])

	require.NoError(t, svc.SetPassword(ctx, "old-pass", "new-pass"))
	reloaded, err := h.users.GetByID(dbctx.Context{Ctx: ctx}, u.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.Password), []byte("new-pass")))
}

func TestHashPasswordRejectsOverlongInput(t *testing.T) {
	_, err := HashPassword(strings.Repeat("p", 73))
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "got %v", err)

	hashed, err := HashPassword(strings.Repeat("p", 72))
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
}
