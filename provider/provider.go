/*
Package provider defines the entity-provider boundary of the engine.

PURPOSE:
  The engine never fetches data itself: users and task logs arrive through
  these interfaces as already-constructed typed entities. A provider may be
  backed by SQLite, an HTTP client to the HR backend, or an in-memory
  fixture - the aggregation layer cannot tell the difference.

FAILURE SEMANTICS:
  A provider failure is an UpstreamFailure: it is wrapped (UpstreamError)
  and surfaced to the caller unchanged, never swallowed. The engine does
  not retry - it has no concept of the transport; retry policy belongs to
  whoever owns the fetch.

  "No data" is NOT a failure. An unknown user yields (nil, nil) from
  GetUser and empty lists elsewhere, keeping read paths total.

IMPLEMENTATIONS:
  - provider/memory: In-memory fixtures for tests and demos
  - store/sqlite:    SQLite-backed store for the server
*/
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/warp/workforce-engine/engine"
)

// =============================================================================
// ENTITY PROVIDERS - Read-only data sources
// =============================================================================

// UserDirectory supplies user records with their pay parameters.
type UserDirectory interface {
	// ListUsers returns all known users.
	ListUsers(ctx context.Context) ([]engine.User, error)

	// GetUser returns one user, or (nil, nil) when unknown.
	GetUser(ctx context.Context, id engine.UserID) (*engine.User, error)
}

// TaskLog supplies work-log entries. An empty userID means all users.
type TaskLog interface {
	ListTasks(ctx context.Context, userID engine.UserID) ([]engine.Task, error)
}

// =============================================================================
// UPSTREAM FAILURES
// =============================================================================

// ErrUpstream marks any entity-provider failure. Match with errors.Is.
var ErrUpstream = errors.New("entity provider failure")

// UpstreamError wraps a provider failure with the operation that failed.
// It unwraps to the original cause AND matches ErrUpstream.
type UpstreamError struct {
	Op  string // e.g. "list users", "list tasks"
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Upstream wraps err as an UpstreamError unless it is nil or already one.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
