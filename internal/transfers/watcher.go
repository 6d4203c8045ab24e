package transfers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// DefaultCompletionWindow is how long an in_progress record may age before
// the checker assumes its transfer finished. The window is the fallback for
// records whose per-file transfer results are unavailable.
const DefaultCompletionWindow = 2 * time.Minute

// Watcher reconciles in_progress tracking records against per-file transfer
// results, falling back to an age window when results are unavailable.
type Watcher struct {
	Store Store

	// Results enables per-file completion checks; nil leaves only the
	// age window.
	Results     transfer.TransferResultLister
	ConnectorID string

	// Window overrides DefaultCompletionWindow when positive.
	Window time.Duration

	Logf func(format string, args ...interface{})

	// now is replaced in tests.
	now func() time.Time
}

// CheckReport summarizes one status check run.
type CheckReport struct {
	Checked   int
	Completed []string

	// Failed are files whose transfer reported FAILED; they are reset to
	// pending for the next retrieval run.
	Failed []string
}

// Check resolves in_progress records. Records whose transfer reports the file
// COMPLETED are marked completed and FAILED files are reset to pending; files
// the results do not settle fall back to the completion window. Records with
// unparseable timestamps are skipped and logged.
func (w *Watcher) Check(ctx context.Context) (*CheckReport, error) {
	logf := w.logf()

	inProgress, err := w.Store.ListByStatus(ctx, dynamo.StatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress files: %w", err)
	}

	report := &CheckReport{Checked: len(inProgress)}
	logf("found %d in-progress transfers to check", len(inProgress))

	resultsByTransfer := map[string]map[string]transfer.FileResult{}

	for _, rec := range inProgress {
		result, found := w.lookupResult(ctx, rec, resultsByTransfer)
		if found {
			switch result.Status {
			case transfer.FileResultCompleted:
				w.markCompleted(ctx, rec.FilePath, report)
				continue
			case transfer.FileResultFailed:
				if err := w.Store.MarkPending(ctx, rec.FilePath); err != nil {
					logf("failed to reset %s to pending: %v", rec.FilePath, err)
					continue
				}
				report.Failed = append(report.Failed, rec.FilePath)
				logf("transfer of %s failed, reset to pending: %s", rec.FilePath, result.FailureMessage)
				continue
			default:
				// Still queued or running.
				continue
			}
		}

		if w.agedOut(rec, logf) {
			w.markCompleted(ctx, rec.FilePath, report)
		}
	}

	return report, nil
}

// lookupResult finds the per-file result for a record, fetching and caching
// the transfer's result set on first use. A fetch failure is logged and
// treated as no result, leaving the record to the age window.
func (w *Watcher) lookupResult(ctx context.Context, rec dynamo.FileRecord, cache map[string]map[string]transfer.FileResult) (transfer.FileResult, bool) {
	if w.Results == nil || rec.TransferID == "" {
		return transfer.FileResult{}, false
	}

	byPath, ok := cache[rec.TransferID]
	if !ok {
		results, err := w.Results.ListTransferResults(ctx, w.ConnectorID, rec.TransferID)
		if err != nil {
			w.logf()("failed to list results for transfer %s: %v", rec.TransferID, err)
			results = nil
		}
		byPath = make(map[string]transfer.FileResult, len(results))
		for _, res := range results {
			byPath[res.FilePath] = res
		}
		cache[rec.TransferID] = byPath
	}

	result, ok := byPath[rec.FilePath]
	return result, ok
}

func (w *Watcher) agedOut(rec dynamo.FileRecord, logf func(string, ...interface{})) bool {
	window := w.Window
	if window <= 0 {
		window = DefaultCompletionWindow
	}
	nowFn := w.now
	if nowFn == nil {
		nowFn = time.Now
	}

	ts := rec.UpdatedAt
	if ts == "" {
		ts = rec.EnqueuedAt
	}
	started, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		logf("skipping %s: bad timestamp %q", rec.FilePath, ts)
		return false
	}
	return nowFn().Sub(started) >= window
}

func (w *Watcher) markCompleted(ctx context.Context, filePath string, report *CheckReport) {
	logf := w.logf()
	if err := w.Store.MarkCompleted(ctx, filePath); err != nil {
		logf("failed to mark %s completed: %v", filePath, err)
		return
	}
	report.Completed = append(report.Completed, filePath)
	logf("marked %s as completed", filePath)
}

func (w *Watcher) logf() func(string, ...interface{}) {
	if w.Logf != nil {
		return w.Logf
	}
	return log.Printf
}
