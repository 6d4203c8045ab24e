// Package transfers drives file movement through a bootstrapped connector:
// retrieving remote files into the landing bucket, pushing outbox objects to
// the remote endpoint, and reconciling the tracking table as transfers
// progress. The flows are one-shot and sequential; schedules are owned by the
// surrounding infrastructure.
package transfers

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"

	"github.com/connectorctl/connectorctl/internal/platform/dynamo"
	"github.com/connectorctl/connectorctl/internal/util/retry"
)

// Store is the tracking table surface used by the flows.
type Store interface {
	ListByStatus(ctx context.Context, status string) ([]dynamo.FileRecord, error)
	Enqueue(ctx context.Context, filePath string) error
	MarkInProgress(ctx context.Context, filePath, transferID string) error
	MarkPending(ctx context.Context, filePath string) error
	MarkCompleted(ctx context.Context, filePath string) error
}

// ObjectLister lists staged objects in a bucket prefix.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
}

// ObjectChecker verifies a staged object exists before it is sent.
type ObjectChecker interface {
	ObjectExists(ctx context.Context, bucketName, key string) (bool, error)
}

// startRetryOptions bounds retries around transfer start calls, which the
// service throttles under burst load.
var startRetryOptions = []retry.Option{
	retry.WithAttempts(3),
	retry.WithInitialDelay(2 * time.Second),
}

// startTransfer runs a start call under the retry policy. Only throttling
// errors are retried; anything else fails the call outright.
func startTransfer(ctx context.Context, start func() (string, error), opts ...retry.Option) (string, error) {
	var transferID string
	err := retry.Do(ctx, func() error {
		id, err := start()
		if err != nil {
			if isThrottle(err) {
				return err
			}
			return retry.Permanent(err)
		}
		transferID = id
		return nil
	}, opts...)
	return transferID, err
}

func isThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "TooManyRequestsException":
		return true
	}
	return false
}
