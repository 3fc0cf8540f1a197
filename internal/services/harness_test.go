package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

type harness struct {
	db  *gorm.DB
	log *logger.Logger

	users       repos.UserRepo
	subs        repos.SubscriptionRepo
	tokens      repos.UserTokenRepo
	tags        repos.TagRepo
	ingredients repos.IngredientRepo
	recipes     repos.RecipeRepo
	amounts     repos.IngredientAmountRepo
	favorites   repos.MembershipRepo
	cart        repos.MembershipRepo

	mediaRoot string
	images    ImageService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		db:          db,
		log:         log,
		users:       repos.NewUserRepo(db, log),
		subs:        repos.NewSubscriptionRepo(db, log),
		tokens:      repos.NewUserTokenRepo(db, log),
		tags:        repos.NewTagRepo(db, log),
		ingredients: repos.NewIngredientRepo(db, log),
		recipes:     repos.NewRecipeRepo(db, log),
		amounts:     repos.NewIngredientAmountRepo(db, log),
		favorites:   repos.NewFavoriteRepo(db, log),
		cart:        repos.NewShoppingCartRepo(db, log),
		mediaRoot:   t.TempDir(),
	}
	store, err := objectstore.New(context.Background(), log, objectstore.Config{
		Mode:          objectstore.ModeLocal,
		Root:          h.mediaRoot,
		PublicBaseURL: "http://testserver/media",
	})
	require.NoError(t, err)
	h.images = NewImageService(log, store, DefaultRecipeImagePrefix)
	return h
}

func (h *harness) recipeService() RecipeService {
	assembly := aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        aggregates.BaseDeps{DB: h.db, Log: h.log},
		Recipes:     h.recipes,
		Amounts:     h.amounts,
		Tags:        h.tags,
		Ingredients: h.ingredients,
	})
	return NewRecipeService(h.log, h.recipes, assembly, h.images, DefaultBounds())
}

func (h *harness) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, h.db.Model(model).Count(&n).Error)
	return n
}

func asUser(ctx context.Context, u *types.User) context.Context {
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: u.ID})
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
