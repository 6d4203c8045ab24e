// Package bootstrap drives host-key bootstrap for SFTP connectors.
//
// A freshly created connector has an empty trusted host key set: usable, but
// it will accept any server. The workflow in this package closes that gap by
// probing the connector, harvesting the remote host key (from the probe
// response when the service surfaces one, otherwise by an independent SSH
// scan), applying it, and verifying the result.
//
// The workflow is a bounded-retry state machine with a fixed inter-attempt
// delay. It runs once per connector lifecycle event, sequentially, and
// terminates. Terminal failures are soft: they are reported in the Result,
// never as an error, so the surrounding provisioning process is not blocked
// by an imperfect connectivity check. Only invalid inputs and context
// cancellation produce hard errors.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/connectorctl/connectorctl/internal/hostkey"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 10 * time.Second
)

// Prober issues a connectivity test against a connector.
type Prober interface {
	Probe(ctx context.Context, connectorID string) (*transfer.ProbeResult, error)
}

// Discoverer scans a remote endpoint for its host key.
type Discoverer interface {
	Discover(ctx context.Context, endpointURL string) (hostkey.ScanResult, error)
}

// Reconciler applies a discovered host key to a connector, replacing its
// trusted host key set.
type Reconciler interface {
	ApplyHostKey(ctx context.Context, connectorID, key string) error
}

// PreflightFunc reports required external tooling missing from the execution
// host. A non-empty result skips the workflow entirely (soft skip, no
// network activity).
type PreflightFunc func() (missing []string)

// Workflow bootstraps one connector's trusted host key.
type Workflow struct {
	connectorID string
	endpointURL string

	prober     Prober
	discoverer Discoverer
	reconciler Reconciler
	classifier *Classifier
	preflight  PreflightFunc

	maxAttempts int
	delay       time.Duration

	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
	logf  func(format string, args ...interface{})
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithMaxAttempts sets the probe attempt budget.
func WithMaxAttempts(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(w *Workflow) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// WithClassifier replaces the default probe result classifier.
func WithClassifier(c *Classifier) Option {
	return func(w *Workflow) { w.classifier = c }
}

// WithPreflight sets the tooling preflight check.
func WithPreflight(f PreflightFunc) Option {
	return func(w *Workflow) { w.preflight = f }
}

// WithLogger redirects workflow logging.
func WithLogger(logf func(format string, args ...interface{})) Option {
	return func(w *Workflow) { w.logf = logf }
}

// New creates a bootstrap workflow for one connector.
func New(connectorID, endpointURL string, prober Prober, discoverer Discoverer, reconciler Reconciler, opts ...Option) *Workflow {
	w := &Workflow{
		connectorID: connectorID,
		endpointURL: endpointURL,
		prober:      prober,
		discoverer:  discoverer,
		reconciler:  reconciler,
		classifier:  NewClassifier(),
		maxAttempts: defaultMaxAttempts,
		delay:       defaultRetryDelay,
		sleep:       sleepCtx,
		logf:        log.Printf,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the workflow. The returned error is non-nil only for invalid
// inputs or context cancellation; every other ending, including exhausted
// retries and failed verification, is reported through the Result.
func (w *Workflow) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	res.enter(StateInit)

	if w.preflight != nil {
		if missing := w.preflight(); len(missing) > 0 {
			res.enter(StateSkipped)
			res.Outcome = OutcomeSkipped
			res.SkipReason = fmt.Sprintf("required tooling missing: %s", strings.Join(missing, ", "))
			w.logf("skipping host key bootstrap for %s: %s", w.connectorID, res.SkipReason)
			return res, nil
		}
	}

	// Input validation is the only hard-failure path besides cancellation:
	// a bad connector ID or endpoint URL means the inputs themselves are
	// wrong, not that the remote side is transiently unavailable.
	if strings.TrimSpace(w.connectorID) == "" {
		return nil, fmt.Errorf("connector ID is empty")
	}
	if _, err := hostkey.ParseEndpoint(w.endpointURL); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		res.Attempts = attempt
		res.enter(StateProbing)

		key, source, done := w.probeOnce(ctx, attempt, res)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if done {
			res.enter(StateDone)
			res.Outcome = OutcomeVerified
			w.logf("connector %s: connection verified on attempt %d", w.connectorID, attempt)
			return res, nil
		}

		if key != "" {
			return w.reconcile(ctx, key, source, res)
		}

		if attempt < w.maxAttempts {
			res.enter(StateWaiting)
			w.logf("connector %s: attempt %d/%d failed, retrying in %s", w.connectorID, attempt, w.maxAttempts, w.delay)
			if err := w.sleep(ctx, w.delay); err != nil {
				return nil, err
			}
		}
	}

	res.enter(StateWarnDone)
	res.Outcome = OutcomeKeyNotFound
	w.logf("warning: connector %s: no host key found after %d attempts; trusted host key set left unchanged", w.connectorID, w.maxAttempts)
	return res, nil
}

// probeOnce runs one probe cycle. It returns a discovered key (with its
// source) when one became available, or done=true when the probe succeeded.
func (w *Workflow) probeOnce(ctx context.Context, attempt int, res *Result) (key, source string, done bool) {
	probe, err := w.prober.Probe(ctx, w.connectorID)
	if err != nil {
		if ctx.Err() != nil {
			return "", "", false
		}
		res.warnf("attempt %d: probe call failed: %v", attempt, err)
		w.logf("connector %s: probe call failed: %v", w.connectorID, err)
		return w.discover(ctx, attempt, res), "scan", false
	}

	switch w.classifier.Classify(probe) {
	case ClassOK:
		return "", "", true
	case ClassTransient:
		w.logf("connector %s: transient condition: %s", w.connectorID, probe.Message)
		res.warnf("attempt %d: transient: %s", attempt, probe.Message)
		return "", "", false
	case ClassHostKey:
		w.logf("connector %s: probe response surfaced a host key", w.connectorID)
		return strings.TrimSpace(probe.HostKey), "probe", false
	default:
		w.logf("connector %s: probe failed: %s", w.connectorID, probe.Message)
		res.warnf("attempt %d: probe error: %s", attempt, probe.Message)
		return w.discover(ctx, attempt, res), "scan", false
	}
}

// discover runs the independent SSH scan. Scan failure is a diagnostic, not
// an error.
func (w *Workflow) discover(ctx context.Context, attempt int, res *Result) string {
	scan, err := w.discoverer.Discover(ctx, w.endpointURL)
	if err != nil {
		if ctx.Err() == nil {
			res.warnf("attempt %d: host key scan: %v", attempt, err)
		}
		return ""
	}
	if !scan.Found {
		res.warnf("attempt %d: %s", attempt, scan.Reason)
		return ""
	}
	w.logf("connector %s: discovered %s host key via scan", w.connectorID, scan.Algorithm)
	return scan.Key
}

// reconcile applies the key and verifies. Failures are soft: the connector
// is left in its updated-but-unverified state and the result says so.
func (w *Workflow) reconcile(ctx context.Context, key, source string, res *Result) (*Result, error) {
	res.enter(StateReconciling)
	res.HostKey = key
	res.KeySource = source

	if err := w.reconciler.ApplyHostKey(ctx, w.connectorID, key); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res.enter(StateWarnDone)
		res.Outcome = OutcomeUnverified
		res.warnf("failed to update trusted host keys: %v", err)
		w.logf("warning: connector %s: failed to update trusted host keys: %v", w.connectorID, err)
		return res, nil
	}
	res.Reconciled = true
	w.logf("connector %s: trusted host key set replaced", w.connectorID)

	res.enter(StateFinalProbe)
	probe, err := w.prober.Probe(ctx, w.connectorID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res.enter(StateWarnDone)
		res.Outcome = OutcomeUnverified
		res.warnf("final verification probe failed: %v", err)
		w.logf("warning: connector %s: final verification probe failed: %v", w.connectorID, err)
		return res, nil
	}
	if !probe.OK() {
		res.enter(StateWarnDone)
		res.Outcome = OutcomeUnverified
		res.warnf("final verification returned %s: %s", probe.Status, probe.Message)
		w.logf("warning: connector %s: final verification returned %s: %s", w.connectorID, probe.Status, probe.Message)
		return res, nil
	}

	res.enter(StateDone)
	res.Outcome = OutcomeVerified
	w.logf("connector %s: host key applied and connection verified", w.connectorID)
	return res, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
