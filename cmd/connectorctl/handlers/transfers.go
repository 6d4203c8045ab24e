package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/connectorctl/connectorctl/internal/transfers"
)

// Retrieve pulls remote files into the landing bucket. Paths given in enqueue
// are registered as pending first, so a single invocation can both queue and
// start work. With remoteDir set, the remote directory is listed through the
// connector and everything found is retrieved instead of the pending queue.
func Retrieve(ctx context.Context, configPath string, enqueue []string, remoteDir string) error {
	cfg, err := loadTransfersConfig(configPath)
	if err != nil {
		return err
	}

	store, err := newTrackingStore(ctx, cfg.Region, cfg.Transfers.TrackingTable)
	if err != nil {
		return err
	}
	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return err
	}
	objects, err := newObjectStore(ctx, cfg.Region)
	if err != nil {
		return err
	}

	exists, err := objects.BucketExists(ctx, cfg.Transfers.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("landing bucket %s does not exist", cfg.Transfers.Bucket)
	}

	retriever := &transfers.Retriever{
		Store:       store,
		Transfers:   client,
		Directories: client,
		ConnectorID: cfg.Connector.ID,
		Bucket:      cfg.Transfers.Bucket,
		Prefix:      cfg.Transfers.RetrievePrefix,
	}

	if remoteDir != "" {
		report, err := retriever.Discover(ctx, remoteDir)
		if err != nil {
			return err
		}
		printDiscoverReport(report, remoteDir)
		return nil
	}

	if len(enqueue) > 0 {
		if err := retriever.EnqueuePaths(ctx, enqueue); err != nil {
			return err
		}
		log.Printf("enqueued %d remote paths", len(enqueue))
	}

	report, err := retriever.Run(ctx)
	if err != nil {
		return err
	}

	printRetrieveReport(report)
	return nil
}

// Send pushes a staged object (key) or every object under a prefix to the
// remote endpoint.
func Send(ctx context.Context, configPath, key, prefix string) error {
	cfg, err := loadTransfersConfig(configPath)
	if err != nil {
		return err
	}

	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return err
	}
	objects, err := newObjectStore(ctx, cfg.Region)
	if err != nil {
		return err
	}

	sender := &transfers.Sender{
		Transfers:   client,
		Objects:     objects,
		Lister:      objects,
		ConnectorID: cfg.Connector.ID,
	}

	if key != "" {
		transferID, err := sender.SendObject(ctx, cfg.Transfers.Bucket, key)
		if err != nil {
			return err
		}
		fmt.Printf("Transfer started: %s\n", transferID)
		return nil
	}

	transferID, paths, err := sender.SendPrefix(ctx, cfg.Transfers.Bucket, prefix)
	if err != nil {
		return err
	}
	if transferID == "" {
		fmt.Printf("Nothing to send under s3://%s/%s\n", cfg.Transfers.Bucket, prefix)
		return nil
	}
	fmt.Printf("Transfer started: %s (%d files)\n", transferID, len(paths))
	return nil
}

// Check resolves in-progress tracking records against per-file transfer
// results, with the completion window as the fallback.
func Check(ctx context.Context, configPath string) error {
	cfg, err := loadTransfersConfig(configPath)
	if err != nil {
		return err
	}

	store, err := newTrackingStore(ctx, cfg.Region, cfg.Transfers.TrackingTable)
	if err != nil {
		return err
	}
	client, err := newTransferClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	watcher := &transfers.Watcher{
		Store:       store,
		Results:     client,
		ConnectorID: cfg.Connector.ID,
		Window:      cfg.Transfers.CompletionWindow(),
	}

	report, err := watcher.Check(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Checked %d in-progress transfer(s), completed %d, failed %d.\n",
		report.Checked, len(report.Completed), len(report.Failed))
	for _, p := range report.Completed {
		fmt.Printf("  completed: %s\n", p)
	}
	for _, p := range report.Failed {
		fmt.Printf("  failed, reset to pending: %s\n", p)
	}
	return nil
}

func printRetrieveReport(report *transfers.RetrieveReport) {
	if report.TransferID == "" {
		if len(report.Reset) > 0 {
			fmt.Printf("No pending files; reset %d stuck transfer(s) to pending.\n", len(report.Reset))
		} else {
			fmt.Println("No pending files to retrieve.")
		}
		return
	}

	fmt.Printf("Retrieval started: %s (%d files)\n", report.TransferID, len(report.Submitted))
	for _, p := range report.Submitted {
		fmt.Printf("  %s\n", p)
	}
	if len(report.UpdateFailures) > 0 {
		fmt.Printf("Warning: %d tracking update(s) failed; 'connectorctl check' will reconcile.\n", len(report.UpdateFailures))
	}
}

func printDiscoverReport(report *transfers.RetrieveReport, remoteDir string) {
	if report.TransferID == "" {
		fmt.Printf("No files found in %s.\n", remoteDir)
		return
	}

	fmt.Printf("Discovered %d file(s) in %s, retrieval started: %s\n", len(report.Submitted), remoteDir, report.TransferID)
	for _, p := range report.Submitted {
		fmt.Printf("  %s\n", p)
	}
	if len(report.UpdateFailures) > 0 {
		fmt.Printf("Warning: %d tracking update(s) failed; 'connectorctl check' will reconcile.\n", len(report.UpdateFailures))
	}
}
