// Package capability predicts the gate's outcome for UI affordance hiding.
//
// The filter evaluates a previously fetched registry snapshot against the
// principal's level using the same comparison rule as the server gate. It is
// advisory only: the server re-checks every call unconditionally, and nothing
// here is a trust boundary.
package capability

import (
	"github.com/TreeNut-KR/jmedu-admin-sub000/internal/authz"
)

// Result classifies a capability check. Loading and failure are first-class
// outcomes so a dashboard can show "checking" or an error state instead of
// silently treating a slow fetch as "no access".
type Result int

const (
	// Allowed means every requested task passes for the principal.
	Allowed Result = iota
	// Denied means at least one requested task fails.
	Denied
	// Checking means the snapshot has not finished loading.
	Checking
	// Unavailable means the snapshot fetch failed.
	Unavailable
)

// Granted reports whether the result is a clean allow.
func (r Result) Granted() bool { return r == Allowed }

// Snapshot is an immutable view of the permission registry plus the
// principal's level at fetch time.
type Snapshot struct {
	result  Result
	levels  map[authz.Task]authz.Level
	granted authz.Level
	err     error
}

// Loading returns a snapshot that is still being fetched.
func Loading() Snapshot {
	return Snapshot{result: Checking}
}

// Failed returns a snapshot whose fetch errored.
func Failed(err error) Snapshot {
	return Snapshot{result: Unavailable, err: err}
}

// Ready builds a usable snapshot from the registry listing and the
// principal's granted level.
func Ready(granted authz.Level, records []authz.PermissionRecord) Snapshot {
	levels := make(map[authz.Task]authz.Level, len(records))
	for _, rec := range records {
		levels[rec.Task] = rec.Level
	}
	return Snapshot{result: Allowed, levels: levels, granted: granted}
}

// Err returns the fetch error for Unavailable snapshots.
func (s Snapshot) Err() error { return s.err }

// CanPerform evaluates the requested tasks with AND semantics: allowed iff
// every task has a registry record the principal's level satisfies. An empty
// task list is vacuously allowed. A task missing from the snapshot denies,
// matching the gate's refusal to allow unregistered tasks.
func (s Snapshot) CanPerform(tasks ...authz.Task) Result {
	if s.result == Checking || s.result == Unavailable {
		return s.result
	}
	for _, task := range tasks {
		required, ok := s.levels[task]
		if !ok || !s.granted.Satisfies(required) {
			return Denied
		}
	}
	return Allowed
}

// Map computes the allow/deny decision for each listed task individually,
// in the shape the dashboard consumes from GET /auth/capabilities.
func (s Snapshot) Map(tasks []authz.Task) map[authz.Task]bool {
	out := make(map[authz.Task]bool, len(tasks))
	for _, task := range tasks {
		out[task] = s.CanPerform(task).Granted()
	}
	return out
}
