package aggregates

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domainagg "github.com/yungbote/coursecatalog-backend/internal/domain/aggregates"
	"github.com/yungbote/coursecatalog-backend/internal/platform/dbctx"
)

func TestExecuteWriteReportsOutcome(t *testing.T) {
	cases := []struct {
		name      string
		fnErr     error
		status    string
		conflicts int
		retries   int
	}{
		{"success", nil, "success", 0, 0},
		{"invariant", InvariantError("course has no detail"), string(domainagg.CodeInvalidOperation), 0, 0},
		{"validation", ValidationError("user id is required"), string(domainagg.CodeInvalidInput), 0, 0},
		{"conflict", ConflictError("enrollment row already exists"), string(domainagg.CodeConflict), 1, 0},
		{"retryable", RetryableError("database is locked"), string(domainagg.CodeRetryable), 0, 1},
		{"deadline", context.DeadlineExceeded, string(domainagg.CodeRetryable), 0, 1},
		{"unknown", errors.New("boom"), string(domainagg.CodeInternal), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &spyHooks{}
			op := "Catalog.Enrollment." + tc.name
			err := executeWrite(context.Background(), BaseDeps{
				Runner: spyTxRunner{},
				Hooks:  hooks,
			}, op, func(dbctx.Context) error { return tc.fnErr })

			if tc.fnErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.fnErr != nil && string(domainagg.CodeOf(err)) != tc.status {
				t.Fatalf("code = %q, want %q (%v)", domainagg.CodeOf(err), tc.status, err)
			}
			if len(hooks.Operations) != 1 || hooks.Operations[0].Name != op || hooks.Operations[0].Status != tc.status {
				t.Fatalf("operations = %+v", hooks.Operations)
			}
			if len(hooks.Conflicts) != tc.conflicts || len(hooks.Retries) != tc.retries {
				t.Fatalf("conflicts=%v retries=%v", hooks.Conflicts, hooks.Retries)
			}
		})
	}
}

func TestExecuteWriteDefaultsOpName(t *testing.T) {
	hooks := &spyHooks{}
	_ = executeWrite(context.Background(), BaseDeps{Runner: spyTxRunner{}, Hooks: hooks}, "  ", func(dbctx.Context) error { return nil })
	if len(hooks.Operations) != 1 || hooks.Operations[0].Name != "aggregate.write" {
		t.Fatalf("operations = %+v", hooks.Operations)
	}
}

func TestGormTxRunnerWithoutDB(t *testing.T) {
	err := NewGormTxRunner(nil).InTx(context.Background(), func(dbctx.Context) error { return nil })
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

type spyTxRunner struct{}

func (spyTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return fn(dbctx.Context{Ctx: ctx})
}

type spyOperation struct {
	Name   string
	Status string
}

type spyHooks struct {
	mu         sync.Mutex
	Operations []spyOperation
	Conflicts  []string
	Retries    []string
}

func (h *spyHooks) ObserveOperation(name, status string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, spyOperation{Name: name, Status: status})
}

func (h *spyHooks) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Conflicts = append(h.Conflicts, name)
}

func (h *spyHooks) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Retries = append(h.Retries, name)
}
