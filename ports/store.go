package ports

import (
	"context"

	"github.com/cybermonitor-rd/sentinel/core"
)

// ChallengeStore holds pending second-factor bindings between login and
// verification. Get and Delete are keyed by the challenge reference;
// implementations synchronize per reference so unrelated logins never
// contend.
type ChallengeStore interface {
	Put(ctx context.Context, challenge *core.Challenge) error
	Get(ctx context.Context, ref string) (*core.Challenge, error)
	// RecordFailure atomically increments the attempt counter and returns
	// the new count. Counts returned to concurrent callers are distinct.
	RecordFailure(ctx context.Context, ref string) (int, error)
	// Delete removes the pending challenge for ref and reports whether an
	// entry was removed. Single-use consumption relies on this: of several
	// concurrent deletes for one reference, exactly one observes true.
	Delete(ctx context.Context, ref string) (bool, error)
}
