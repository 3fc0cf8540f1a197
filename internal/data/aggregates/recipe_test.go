package aggregates_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	aggtestutil "github.com/yungbote/foodgram-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type recipeFixture struct {
	db      *gorm.DB
	agg     domainagg.RecipeAggregate
	hooks   *aggtestutil.HooksRecorder
	author  *types.User
	tags    []*types.Tag
	eggs    *types.Ingredient
	flour   *types.Ingredient
	milk    *types.Ingredient
	recipes repos.RecipeRepo
}

func newRecipeFixture(t *testing.T, runner aggregates.TxRunner) *recipeFixture {
	t.Helper()
	db := testutil.DB(t)
	ctx := context.Background()
	logg := testutil.Logger(t)
	hooks := &aggtestutil.HooksRecorder{}
	if late, ok := runner.(*aggtestutil.LateFailureRunner); ok {
		late.DB = db
	}

	f := &recipeFixture{
		db:      db,
		hooks:   hooks,
		author:  testutil.SeedUser(t, ctx, db, "chef"),
		tags:    []*types.Tag{testutil.SeedTag(t, ctx, db, "breakfast"), testutil.SeedTag(t, ctx, db, "lunch"), testutil.SeedTag(t, ctx, db, "dinner")},
		eggs:    testutil.SeedIngredient(t, ctx, db, "eggs", "pcs"),
		flour:   testutil.SeedIngredient(t, ctx, db, "flour", "cup"),
		milk:    testutil.SeedIngredient(t, ctx, db, "milk", "ml"),
		recipes: repos.NewRecipeRepo(db, logg),
	}
	f.agg = aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: logg, Runner: runner, Hooks: hooks},
		Recipes:     f.recipes,
		Amounts:     repos.NewIngredientAmountRepo(db, logg),
		Tags:        repos.NewTagRepo(db, logg),
		Ingredients: repos.NewIngredientRepo(db, logg),
	})
	return f
}

func (f *recipeFixture) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func (f *recipeFixture) countTagLinks(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Table("recipe_tag").Count(&n).Error; err != nil {
		t.Fatalf("count recipe_tag: %v", err)
	}
	return n
}

func fields(name string) domainagg.RecipeFields {
	return domainagg.RecipeFields{Name: name, Text: "mix and cook", Image: "recipes/images/x.png", CookingTime: 15}
}

func tagSet(rec *types.Recipe) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rec.Tags))
	for _, t := range rec.Tags {
		out = append(out, t.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func amountSet(rec *types.Recipe) map[uuid.UUID]int {
	out := map[uuid.UUID]int{}
	for _, a := range rec.IngredientAmounts {
		out[a.IngredientID] = a.Amount
	}
	return out
}

func TestRecipeAggregateCreate(t *testing.T) {
	f := newRecipeFixture(t, nil)
	ctx := context.Background()

	rec, err := f.agg.Create(ctx, f.author.ID, fields("pancakes"),
		[]domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 2}, {IngredientID: f.flour.ID, Amount: 1}},
		[]uuid.UUID{f.tags[0].ID, f.tags[1].ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == uuid.Nil || rec.PubDate.IsZero() {
		t.Fatalf("expected id and pub_date, got %+v", rec)
	}
	if len(rec.Tags) != 2 || len(rec.IngredientAmounts) != 2 {
		t.Fatalf("links not written: tags=%d amounts=%d", len(rec.Tags), len(rec.IngredientAmounts))
	}
	if f.hooks.Last("Recipes.Recipe.Create") != "success" {
		t.Fatalf("hook status: %v", f.hooks.Statuses)
	}
}

func TestRecipeAggregateUpdateReplacesLinks(t *testing.T) {
	f := newRecipeFixture(t, nil)
	ctx := context.Background()

	rec, err := f.agg.Create(ctx, f.author.ID, fields("pancakes"),
		[]domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 2}, {IngredientID: f.flour.ID, Amount: 1}},
		[]uuid.UUID{f.tags[0].ID, f.tags[1].ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalPubDate := rec.PubDate

	upd := fields("crepes")
	upd.Image = ""
	upd.CookingTime = 30
	newTags := []uuid.UUID{f.tags[2].ID}
	newAmounts := []domainagg.AmountInput{{IngredientID: f.milk.ID, Amount: 250}, {IngredientID: f.eggs.ID, Amount: 3}}
	if _, err := f.agg.Update(ctx, rec.ID, upd, newAmounts, newTags); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := f.recipes.GetByID(dbctx.Context{Ctx: ctx}, rec.ID)
	if err != nil || got == nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "crepes" || got.CookingTime != 30 {
		t.Fatalf("fields not updated: %+v", got)
	}
	if got.Image != "recipes/images/x.png" {
		t.Fatalf("omitted image must keep the stored one, got %q", got.Image)
	}
	if !got.PubDate.Equal(originalPubDate) {
		t.Fatalf("pub_date must not change on update")
	}
	if ids := tagSet(got); len(ids) != 1 || ids[0] != f.tags[2].ID {
		t.Fatalf("tags not fully replaced: %v", ids)
	}
	amounts := amountSet(got)
	if len(amounts) != 2 || amounts[f.milk.ID] != 250 || amounts[f.eggs.ID] != 3 {
		t.Fatalf("amounts not fully replaced: %v", amounts)
	}
	if n := f.countRows(t, &types.IngredientAmount{}); n != 2 {
		t.Fatalf("stale amount rows left behind: %d", n)
	}
	if n := f.countTagLinks(t); n != 1 {
		t.Fatalf("stale tag links left behind: %d", n)
	}
}

func TestRecipeAggregateRejectsBadShapeWithoutWriting(t *testing.T) {
	f := newRecipeFixture(t, nil)
	ctx := context.Background()
	egg := []domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 1}}
	tag := []uuid.UUID{f.tags[0].ID}

	noImage := fields("x")
	noImage.Image = ""

	cases := []struct {
		name    string
		fields  domainagg.RecipeFields
		amounts []domainagg.AmountInput
		tags    []uuid.UUID
		field   string
	}{
		{"empty ingredients", fields("x"), nil, tag, "ingredients"},
		{"empty tags", fields("x"), egg, nil, "tags"},
		{"duplicate ingredients", fields("x"), []domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 1}, {IngredientID: f.eggs.ID, Amount: 2}}, tag, "ingredients"},
		{"duplicate tags", fields("x"), egg, []uuid.UUID{f.tags[0].ID, f.tags[0].ID}, "tags"},
		{"missing image", noImage, egg, tag, "image"},
		{"unknown tag", fields("x"), egg, []uuid.UUID{uuid.New()}, "tags"},
		{"unknown ingredient", fields("x"), []domainagg.AmountInput{{IngredientID: uuid.New(), Amount: 1}}, tag, "ingredients"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.agg.Create(ctx, f.author.ID, tc.fields, tc.amounts, tc.tags)
			e, ok := domainagg.As(err)
			if !ok || e.Code != domainagg.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(e.Fields[tc.field]) == 0 {
				t.Fatalf("expected a %q field error, got %v", tc.field, e.Fields)
			}
			if n := f.countRows(t, &types.Recipe{}); n != 0 {
				t.Fatalf("nothing may be persisted, found %d recipes", n)
			}
		})
	}
}

func TestRecipeAggregateRollsBackLateFailure(t *testing.T) {
	injected := errors.New("commit refused")
	runner := &aggtestutil.LateFailureRunner{Err: injected}
	f := newRecipeFixture(t, runner)
	ctx := context.Background()

	_, err := f.agg.Create(ctx, f.author.ID, fields("doomed"),
		[]domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 2}},
		[]uuid.UUID{f.tags[0].ID})
	if !errors.Is(err, injected) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if runner.Rollbacks != 1 {
		t.Fatalf("expected one rollback, got %d", runner.Rollbacks)
	}
	if n := f.countRows(t, &types.Recipe{}); n != 0 {
		t.Fatalf("recipe row survived rollback")
	}
	if n := f.countRows(t, &types.IngredientAmount{}); n != 0 {
		t.Fatalf("amount rows survived rollback")
	}
	if n := f.countTagLinks(t); n != 0 {
		t.Fatalf("tag links survived rollback")
	}
}

func TestRecipeAggregateUpdateMissingRecipe(t *testing.T) {
	f := newRecipeFixture(t, nil)
	_, err := f.agg.Update(context.Background(), uuid.New(), fields("x"),
		[]domainagg.AmountInput{{IngredientID: f.eggs.ID, Amount: 1}},
		[]uuid.UUID{f.tags[0].ID})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
