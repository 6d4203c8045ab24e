package transfers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/connectorctl/connectorctl/internal/platform/transfer"
)

// Sender pushes staged bucket objects to the remote endpoint.
type Sender struct {
	Transfers transfer.TransferStarter
	Objects   ObjectChecker
	Lister    ObjectLister

	ConnectorID string

	Logf func(format string, args ...interface{})
}

// SendObject pushes a single object and returns the transfer ID. The object
// must exist in the bucket; a missing object is an input error, not a
// transfer failure.
func (s *Sender) SendObject(ctx context.Context, bucket, key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}

	if s.Objects != nil {
		ok, err := s.Objects.ObjectExists(ctx, bucket, key)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("object s3://%s/%s does not exist", bucket, key)
		}
	}

	transferID, err := startTransfer(ctx, func() (string, error) {
		return s.Transfers.StartSend(ctx, s.ConnectorID, []string{sendPath(bucket, key)})
	}, startRetryOptions...)
	if err != nil {
		return "", fmt.Errorf("failed to start send: %w", err)
	}
	s.logf()("transfer started: %s", transferID)
	return transferID, nil
}

// SendPrefix pushes every object under a bucket prefix in one transfer and
// returns the transfer ID with the submitted paths. An empty prefix sweep is
// not an error; it returns no transfer ID.
func (s *Sender) SendPrefix(ctx context.Context, bucket, prefix string) (string, []string, error) {
	if s.Lister == nil {
		return "", nil, fmt.Errorf("object listing is not configured")
	}

	keys, err := s.Lister.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		s.logf()("no objects under s3://%s/%s", bucket, prefix)
		return "", nil, nil
	}

	paths := make([]string, 0, len(keys))
	for _, key := range keys {
		paths = append(paths, sendPath(bucket, key))
	}

	transferID, err := startTransfer(ctx, func() (string, error) {
		return s.Transfers.StartSend(ctx, s.ConnectorID, paths)
	}, startRetryOptions...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start send: %w", err)
	}
	s.logf()("transfer started: %s (%d files)", transferID, len(paths))
	return transferID, paths, nil
}

// sendPath builds the "/bucket/key" form the transfer service expects.
func sendPath(bucket, key string) string {
	return fmt.Sprintf("/%s/%s", bucket, strings.TrimPrefix(key, "/"))
}

func (s *Sender) logf() func(string, ...interface{}) {
	if s.Logf != nil {
		return s.Logf
	}
	return log.Printf
}
