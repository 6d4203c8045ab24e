package bootstrap

import "fmt"

// State is a position in the bootstrap state machine.
type State string

const (
	StateInit        State = "INIT"
	StateProbing     State = "PROBING"
	StateWaiting     State = "WAITING"
	StateReconciling State = "RECONCILING"
	StateFinalProbe  State = "FINAL_PROBE"
	StateDone        State = "DONE"
	StateWarnDone    State = "WARN_DONE"
	StateSkipped     State = "SKIPPED"
)

// Outcome is the terminal classification of a workflow run.
type Outcome string

const (
	// OutcomeVerified means the final probe returned OK.
	OutcomeVerified Outcome = "verified"

	// OutcomeSkipped means required tooling was missing and no network
	// activity took place.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeKeyNotFound means the attempt budget was exhausted without
	// discovering a host key; the connector's trusted set is unchanged.
	OutcomeKeyNotFound Outcome = "key-not-found"

	// OutcomeUnverified means a key was applied but the final probe did
	// not return OK. The connector is left in its updated state.
	OutcomeUnverified Outcome = "unverified"
)

// Result carries the outcome and diagnostics of one workflow run. The
// workflow itself never maps outcomes to exit codes; that decision belongs
// to the caller.
type Result struct {
	Outcome Outcome

	// HostKey is the key that was applied to the connector, if any.
	HostKey string

	// KeySource records where the applied key came from: "probe" when it
	// was embedded in a failed test-connection response, "scan" when the
	// independent discoverer found it.
	KeySource string

	// Attempts is the number of probe cycles spent (final verification
	// probes not included).
	Attempts int

	// Reconciled reports whether the connector was updated.
	Reconciled bool

	// SkipReason explains an OutcomeSkipped result.
	SkipReason string

	// Warnings collects non-fatal diagnostics accumulated along the run.
	Warnings []string

	// Transitions is the state trace, for logging and tests.
	Transitions []State
}

// Verified reports whether the run ended with a confirmed working connection.
func (r *Result) Verified() bool {
	return r.Outcome == OutcomeVerified
}

func (r *Result) enter(s State) {
	r.Transitions = append(r.Transitions, s)
}

func (r *Result) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}
