package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewUserRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.User{
		{Email: "Bob@Example.com", Username: "bob", Password: "h", FirstName: "Bob", LastName: "B"},
		{Email: "alice@example.com", Username: "alice", Password: "h", FirstName: "Alice", LastName: "A"},
	})
	if err != nil || len(created) != 2 {
		t.Fatalf("Create: err=%v len=%d", err, len(created))
	}
	if created[0].ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}

	if ok, err := repo.EmailExists(dbc, "bob@example.com"); err != nil || !ok {
		t.Fatalf("EmailExists case-insensitive: ok=%v err=%v", ok, err)
	}
	if ok, err := repo.UsernameExists(dbc, "carol"); err != nil || ok {
		t.Fatalf("UsernameExists(carol): ok=%v err=%v", ok, err)
	}
	if rows, err := repo.GetByEmails(dbc, []string{"BOB@example.com"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByUsernames(dbc, []string{"alice"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByUsernames: err=%v len=%d", err, len(rows))
	}

	list, err := repo.List(dbc, 0, 10)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}
	if list[0].Username != "alice" {
		t.Fatalf("List should order by username, got %s first", list[0].Username)
	}
	if page, err := repo.List(dbc, 1, 1); err != nil || len(page) != 1 || page[0].Username != "bob" {
		t.Fatalf("List offset: err=%v page=%v", err, page)
	}
	if n, err := repo.Count(dbc); err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}

	if err := repo.UpdatePassword(dbc, created[0].ID, "new-hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Password != "new-hash" {
		t.Fatalf("GetByID after UpdatePassword: got=%+v err=%v", got, err)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID missing: got=%+v err=%v", missing, err)
	}

	if _, err := repo.Create(dbc, []*types.User{{Email: "alice@example.com", Username: "alice2", Password: "h"}}); err == nil {
		t.Fatalf("duplicate email should violate the unique index")
	}
}

func TestSubscriptionRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	repo := NewSubscriptionRepo(db, testutil.Logger(t))

	follower := testutil.SeedUser(t, ctx, db, "follower")
	a1 := testutil.SeedUser(t, ctx, db, "author1")
	a2 := testutil.SeedUser(t, ctx, db, "author2")
	a3 := testutil.SeedUser(t, ctx, db, "author3")

	for _, a := range []*types.User{a1, a2} {
		if _, err := repo.Create(dbc, follower.ID, a.ID); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if _, err := repo.Create(dbc, follower.ID, a1.ID); err == nil {
		t.Fatalf("duplicate subscription should violate the unique index")
	}
	if _, err := repo.Create(dbc, follower.ID, follower.ID); err == nil {
		t.Fatalf("self subscription should violate the check constraint")
	}

	if ok, err := repo.Exists(dbc, follower.ID, a1.ID); err != nil || !ok {
		t.Fatalf("Exists: ok=%v err=%v", ok, err)
	}
	if n, err := repo.CountByUser(dbc, follower.ID); err != nil || n != 2 {
		t.Fatalf("CountByUser: n=%d err=%v", n, err)
	}
	ids, err := repo.ListAuthorIDs(dbc, follower.ID, 0, 10)
	if err != nil || len(ids) != 2 {
		t.Fatalf("ListAuthorIDs: err=%v ids=%v", err, ids)
	}
	followed, err := repo.AuthorIDsFollowed(dbc, follower.ID, []uuid.UUID{a1.ID, a2.ID, a3.ID})
	if err != nil {
		t.Fatalf("AuthorIDsFollowed: %v", err)
	}
	if !followed[a1.ID] || !followed[a2.ID] || followed[a3.ID] {
		t.Fatalf("AuthorIDsFollowed: %v", followed)
	}
	if anon, err := repo.AuthorIDsFollowed(dbc, uuid.Nil, []uuid.UUID{a1.ID}); err != nil || len(anon) != 0 {
		t.Fatalf("anonymous AuthorIDsFollowed: %v err=%v", anon, err)
	}

	if n, err := repo.Delete(dbc, follower.ID, a1.ID); err != nil || n != 1 {
		t.Fatalf("Delete: n=%d err=%v", n, err)
	}
	if n, err := repo.Delete(dbc, follower.ID, a1.ID); err != nil || n != 0 {
		t.Fatalf("Delete again: n=%d err=%v", n, err)
	}
}
