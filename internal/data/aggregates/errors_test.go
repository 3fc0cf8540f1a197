package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want domainagg.ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"translated duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), domainagg.CodeConflict},
		{"translated foreign key", gorm.ErrForeignKeyViolated, domainagg.CodePreconditionFailed},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg foreign key", &pgconn.PgError{Code: "23503"}, domainagg.CodePreconditionFailed},
		{"pg check", &pgconn.PgError{Code: "23514"}, domainagg.CodeValidation},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, domainagg.CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: favorite.user_id, favorite.recipe_id"), domainagg.CodeConflict},
		{"sqlite check", errors.New("CHECK constraint failed: chk_subscription_not_self"), domainagg.CodeValidation},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), domainagg.CodePreconditionFailed},
		{"sqlite busy", errors.New("database is locked"), domainagg.CodeRetryable},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"unknown", errors.New("boom"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := MapError("op", tc.in)
			if !domainagg.IsCode(err, tc.want) {
				t.Fatalf("want %q, got %q (%v)", tc.want, domainagg.CodeOf(err), err)
			}
		})
	}
}

func TestMapError_PassthroughCodedError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeNotFound, "op", "recipe not found", nil)
	wrapped := fmt.Errorf("outer: %w", in)
	if out := MapError("other", wrapped); out != wrapped {
		t.Fatalf("expected passthrough of coded error, got %v", out)
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}
