package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestExecuteWriteObservesSuccessStatus(t *testing.T) {
	hooks := &spyHooks{}

	err := executeWrite(context.Background(), BaseDeps{
		Runner: spyTxRunner{},
		Hooks:  hooks,
	}, "aggregate.test.success", func(_ dbctx.Context) error { return nil })
	if err != nil {
		t.Fatalf("executeWrite success: %v", err)
	}
	if len(hooks.Operations) != 1 || hooks.Operations[0].Status != "success" {
		t.Fatalf("unexpected operations: %+v", hooks.Operations)
	}
}

func TestExecuteWriteMapsAndCounts(t *testing.T) {
	cases := []struct {
		name      string
		body      error
		want      domainagg.ErrorCode
		conflicts int
		retries   int
	}{
		{"validation", domainagg.NewValidation("op", domainagg.FieldErrors{"tags": {"required"}}), domainagg.CodeValidation, 0, 0},
		{"unique violation", errors.New("UNIQUE constraint failed: subscription.user_id"), domainagg.CodeConflict, 1, 0},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &spyHooks{}
			err := executeWrite(context.Background(), BaseDeps{
				Runner: spyTxRunner{},
				Hooks:  hooks,
			}, "aggregate.test", func(_ dbctx.Context) error { return tc.body })
			if !domainagg.IsCode(err, tc.want) {
				t.Fatalf("want code %q, got %v", tc.want, err)
			}
			if len(hooks.Conflicts) != tc.conflicts || len(hooks.Retries) != tc.retries {
				t.Fatalf("counters: conflicts=%v retries=%v", hooks.Conflicts, hooks.Retries)
			}
			if len(hooks.Operations) != 1 || hooks.Operations[0].Status != string(tc.want) {
				t.Fatalf("unexpected op status: %+v", hooks.Operations)
			}
		})
	}
}

func TestAggregateErrorStatus(t *testing.T) {
	if got := aggregateErrorStatus(nil); got != "success" {
		t.Fatalf("nil status: want=success got=%s", got)
	}
	if got := aggregateErrorStatus(domainagg.Conflict("op", "dup")); got != string(domainagg.CodeConflict) {
		t.Fatalf("conflict status: got=%s", got)
	}
	if got := aggregateErrorStatus(context.DeadlineExceeded); got != string(domainagg.CodeRetryable) {
		t.Fatalf("deadline status: got=%s", got)
	}
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

type spyOperation struct {
	Name   string
	Status string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) {
	h.Conflicts = append(h.Conflicts, name)
}

func (h *spyHooks) IncRetry(name string) {
	h.Retries = append(h.Retries, name)
}
