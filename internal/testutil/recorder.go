// Package testutil holds helpers shared by tests of packages built on the
// store helper.
package testutil

import "sync"

// Statement is one statement observed by a StatementRecorder.
type Statement struct {
	SQL  string
	Args []any
}

// StatementRecorder collects every statement passed to its Hook.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StatementRecorder struct {
	mu   sync.Mutex
	seen []Statement
}

// Hook records a statement. Pass it to store.WithStatementHook.
func (r *StatementRecorder) Hook(query string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, Statement{SQL: query, Args: args})
}

// Count returns the number of statements recorded so far.
func (r *StatementRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

// Last returns the most recent statement, or the zero Statement if none.
func (r *StatementRecorder) Last() Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		return Statement{}
	}
	return r.seen[len(r.seen)-1]
}

// Reset forgets all recorded statements.
func (r *StatementRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = nil
}
