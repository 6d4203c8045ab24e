// Package transfer provides a wrapper around the AWS Transfer Family API.
package transfer

import (
	"context"
)

// ProbeStatus is the status reported by a connector test-connection call.
type ProbeStatus string

const (
	// ProbeOK means the connection fully succeeded.
	ProbeOK ProbeStatus = "OK"

	// ProbeError means the connection failed; Message and HostKey on the
	// ProbeResult carry whatever detail the service surfaced.
	ProbeError ProbeStatus = "ERROR"
)

// ProbeResult is the structured outcome of a connection test.
type ProbeResult struct {
	Status  ProbeStatus
	Message string

	// HostKey is the remote server's host key when the service surfaced
	// one during a failed trust validation, empty otherwise.
	HostKey string
}

// OK reports whether the probe succeeded.
func (r *ProbeResult) OK() bool {
	return r.Status == ProbeOK
}

// ConnectorInfo describes a configured SFTP connector.
type ConnectorInfo struct {
	ID              string
	URL             string
	AccessRole      string
	LoggingRole     string
	SecurityPolicy  string
	SecretID        string
	TrustedHostKeys []string

	// EgressIPs is read-only, populated by the service after creation.
	EgressIPs []string
}

// ConnectorManager defines the interface for inspecting and updating connectors.
type ConnectorManager interface {
	// DescribeConnector returns the current connector configuration.
	DescribeConnector(ctx context.Context, connectorID string) (*ConnectorInfo, error)

	// UpdateTrustedHostKeys replaces the connector's trusted host key set
	// with exactly the given keys, carrying the rest of the configuration
	// unchanged. Replace, not merge: the previous set is discarded.
	UpdateTrustedHostKeys(ctx context.Context, info *ConnectorInfo, keys []string) error

	// TestConnection issues a connectivity test against the connector.
	// A failed test is not an error; the failure detail is in the result.
	TestConnection(ctx context.Context, connectorID string) (*ProbeResult, error)
}

// TransferStarter defines the interface for starting file transfers.
type TransferStarter interface {
	// StartRetrieve pulls remote files into localDir ("/bucket/prefix")
	// and returns the transfer ID.
	StartRetrieve(ctx context.Context, connectorID string, remotePaths []string, localDir string) (string, error)

	// StartSend pushes files ("/bucket/key") to the remote endpoint and
	// returns the transfer ID.
	StartSend(ctx context.Context, connectorID string, sendPaths []string) (string, error)
}

// DirectoryLister lists remote directories through a connector.
type DirectoryLister interface {
	// ListDirectory lists the files under remoteDir on the remote
	// endpoint. The listing output file lands in outputDir
	// ("/bucket/prefix"); the returned paths are the remote file paths.
	ListDirectory(ctx context.Context, connectorID, remoteDir, outputDir string) ([]string, error)
}

// FileResultStatus is the per-file status of a started transfer.
type FileResultStatus string

const (
	FileResultQueued     FileResultStatus = "QUEUED"
	FileResultInProgress FileResultStatus = "IN_PROGRESS"
	FileResultCompleted  FileResultStatus = "COMPLETED"
	FileResultFailed     FileResultStatus = "FAILED"
)

// FileResult is the outcome of one file within a transfer.
type FileResult struct {
	FilePath       string
	Status         FileResultStatus
	FailureMessage string
}

// TransferResultLister reports per-file outcomes of started transfers.
type TransferResultLister interface {
	ListTransferResults(ctx context.Context, connectorID, transferID string) ([]FileResult, error)
}

// Client is the full Transfer Family surface used by this tool.
type Client interface {
	ConnectorManager
	TransferStarter
	DirectoryLister
	TransferResultLister
}
