package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestUserTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserTokenRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "tokenowner")

	makeToken := func(access string, ttl time.Duration) *types.UserToken {
		return &types.UserToken{
			ID:          uuid.New(),
			UserID:      u.ID,
			AccessToken: access,
			ExpiresAt:   time.Now().Add(ttl),
		}
	}

	t1 := makeToken("access-1", time.Hour)
	t2 := makeToken("access-2", -time.Hour)
	t3 := makeToken("access-3", time.Hour)
	if _, err := repo.Create(dbc, []*types.UserToken{t1, t2, t3}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByAccessTokens(dbc, []string{t1.AccessToken}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByAccessTokens: err=%v len=%d", err, len(rows))
	}

	if n, err := repo.DeleteExpired(dbc, time.Now()); err != nil || n != 1 {
		t.Fatalf("DeleteExpired: n=%d err=%v", n, err)
	}
	if rows, err := repo.GetByAccessTokens(dbc, []string{t2.AccessToken}); err != nil || len(rows) != 0 {
		t.Fatalf("expired token should be gone: err=%v len=%d", err, len(rows))
	}

	if n, err := repo.FullDeleteByAccessTokens(dbc, []string{t1.AccessToken}); err != nil || n != 1 {
		t.Fatalf("FullDeleteByAccessTokens: n=%d err=%v", n, err)
	}
	if err := repo.FullDeleteByUserIDs(dbc, []uuid.UUID{u.ID}); err != nil {
		t.Fatalf("FullDeleteByUserIDs: %v", err)
	}
	if rows, err := repo.GetByAccessTokens(dbc, []string{t3.AccessToken}); err != nil || len(rows) != 0 {
		t.Fatalf("after FullDeleteByUserIDs: err=%v len=%d", err, len(rows))
	}
}
