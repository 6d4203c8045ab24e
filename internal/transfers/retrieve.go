package transfers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// DefaultRetrievePrefix is where retrieved files land in the bucket.
const DefaultRetrievePrefix = "retrieved"

// Retriever pulls pending remote files into the landing bucket.
type Retriever struct {
	Store     Store
	Transfers transfer.TransferStarter

	// Directories enables remote discovery; nil restricts the retriever
	// to tracked paths.
	Directories transfer.DirectoryLister

	ConnectorID string
	Bucket      string
	Prefix      string

	Logf func(format string, args ...interface{})
}

// RetrieveReport summarizes one retrieval run.
type RetrieveReport struct {
	// TransferID is set when a transfer was started.
	TransferID string

	// Submitted are the remote paths handed to the transfer.
	Submitted []string

	// Reset are previously in_progress records returned to pending
	// because no new work was found.
	Reset []string

	// UpdateFailures are paths whose tracking update failed after the
	// transfer started; the transfer itself is unaffected.
	UpdateFailures []string
}

// Run starts a retrieval of all pending files. With no pending files it
// instead resets stuck in_progress records to pending so the next run picks
// them up again.
func (r *Retriever) Run(ctx context.Context) (*RetrieveReport, error) {
	logf := r.logf()
	report := &RetrieveReport{}

	pending, err := r.Store.ListByStatus(ctx, dynamo.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending files: %w", err)
	}

	if len(pending) == 0 {
		inProgress, err := r.Store.ListByStatus(ctx, dynamo.StatusInProgress)
		if err != nil {
			return nil, fmt.Errorf("failed to list in-progress files: %w", err)
		}
		for _, rec := range inProgress {
			if err := r.Store.MarkPending(ctx, rec.FilePath); err != nil {
				logf("failed to reset %s to pending: %v", rec.FilePath, err)
				continue
			}
			report.Reset = append(report.Reset, rec.FilePath)
			logf("reset %s to pending for retry", rec.FilePath)
		}
		logf("no pending files found for retrieval")
		return report, nil
	}

	paths := make([]string, 0, len(pending))
	for _, rec := range pending {
		paths = append(paths, rec.FilePath)
	}

	localDir := r.localDirectory()
	logf("retrieving %d files to %s", len(paths), localDir)

	transferID, err := startTransfer(ctx, func() (string, error) {
		return r.Transfers.StartRetrieve(ctx, r.ConnectorID, paths, localDir)
	}, startRetryOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to start retrieval: %w", err)
	}
	report.TransferID = transferID
	report.Submitted = paths
	logf("file retrieval started: %s", transferID)

	r.trackInProgress(ctx, paths, transferID, report)
	return report, nil
}

// Discover lists remoteDir through the connector, starts a retrieval of
// everything found, and tracks each file as in_progress. An empty directory
// is not an error; it returns an empty report.
func (r *Retriever) Discover(ctx context.Context, remoteDir string) (*RetrieveReport, error) {
	if r.Directories == nil {
		return nil, fmt.Errorf("directory listing is not configured")
	}
	logf := r.logf()
	report := &RetrieveReport{}

	localDir := r.localDirectory()
	paths, err := r.Directories.ListDirectory(ctx, r.ConnectorID, remoteDir, localDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", remoteDir, err)
	}
	if len(paths) == 0 {
		logf("no files found in %s", remoteDir)
		return report, nil
	}

	logf("discovered %d files in %s, retrieving to %s", len(paths), remoteDir, localDir)

	transferID, err := startTransfer(ctx, func() (string, error) {
		return r.Transfers.StartRetrieve(ctx, r.ConnectorID, paths, localDir)
	}, startRetryOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to start retrieval: %w", err)
	}
	report.TransferID = transferID
	report.Submitted = paths
	logf("file retrieval started: %s", transferID)

	r.trackInProgress(ctx, paths, transferID, report)
	return report, nil
}

// trackInProgress marks the submitted paths in the tracking table. The
// transfer is already running; a tracking miss is recoverable on the next
// status check.
func (r *Retriever) trackInProgress(ctx context.Context, paths []string, transferID string, report *RetrieveReport) {
	logf := r.logf()
	for _, path := range paths {
		if err := r.Store.MarkInProgress(ctx, path, transferID); err != nil {
			report.UpdateFailures = append(report.UpdateFailures, path)
			logf("failed to mark %s in progress: %v", path, err)
		}
	}
}

// EnqueuePaths registers remote file paths as pending retrievals.
func (r *Retriever) EnqueuePaths(ctx context.Context, paths []string) error {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if err := r.Store.Enqueue(ctx, p); err != nil {
			return fmt.Errorf("failed to enqueue %s: %w", p, err)
		}
	}
	return nil
}

// localDirectory builds the retrieve destination. The transfer service
// expects "/bucket-name/prefix".
func (r *Retriever) localDirectory() string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = DefaultRetrievePrefix
	}
	prefix = strings.Trim(prefix, "/")
	return fmt.Sprintf("/%s/%s", r.Bucket, prefix)
}

func (r *Retriever) logf() func(string, ...interface{}) {
	if r.Logf != nil {
		return r.Logf
	}
	return log.Printf
}
