package testutil

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// LateFailureRunner runs the body in a real transaction and then fails with
// Err instead of committing, so every write the body made is rolled back.
type LateFailureRunner struct {
	DB  *gorm.DB
	Err error

	mu        sync.Mutex
	Rollbacks int
}

var _ aggregates.TxRunner = (*LateFailureRunner)(nil)

func (r *LateFailureRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(dbctx.Context{Ctx: ctx, Tx: tx}); err != nil {
			return err
		}
		return r.Err
	})
	if err != nil {
		r.mu.Lock()
		r.Rollbacks++
		r.mu.Unlock()
	}
	return err
}
