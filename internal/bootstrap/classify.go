package bootstrap

import (
	"strings"

	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// Classification buckets a probe result for the state machine.
type Classification int

const (
	// ClassOK: the connection succeeded.
	ClassOK Classification = iota

	// ClassTransient: the failure matched a known not-yet-ready pattern
	// (typically credential store propagation); wait and retry without
	// scanning.
	ClassTransient

	// ClassHostKey: the failure response embedded the remote host key;
	// proceed straight to reconciliation with it.
	ClassHostKey

	// ClassUnknown: any other failure; attempt independent discovery,
	// then retry within the budget.
	ClassUnknown
)

// defaultTransientPatterns are the service messages observed while a
// connector's secret is still propagating. Matching is case-insensitive
// substring matching.
var defaultTransientPatterns = []string{
	"Cannot access secret manager",
	"Cannot retrieve the secret",
}

// Classifier maps probe results to state machine inputs. The transient
// patterns are configuration, not hard-wired logic, so deployments can adapt
// to message changes without a code change.
type Classifier struct {
	transientPatterns []string
}

// NewClassifier creates a classifier. With no patterns given, the default
// set is used.
func NewClassifier(patterns ...string) *Classifier {
	if len(patterns) == 0 {
		patterns = defaultTransientPatterns
	}
	return &Classifier{transientPatterns: patterns}
}

// Classify buckets a probe result.
func (c *Classifier) Classify(res *transfer.ProbeResult) Classification {
	if res.OK() {
		return ClassOK
	}
	for _, p := range c.transientPatterns {
		if containsFold(res.Message, p) {
			return ClassTransient
		}
	}
	if strings.TrimSpace(res.HostKey) != "" {
		return ClassHostKey
	}
	return ClassUnknown
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
