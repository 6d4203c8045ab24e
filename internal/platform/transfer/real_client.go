package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/transfer"
	"github.com/aws/aws-sdk-go-v2/service/transfer/types"
)

// api is the subset of the SDK client used by RealClient. Narrowed for tests.
type api interface {
	DescribeConnector(ctx context.Context, in *transfer.DescribeConnectorInput, opts ...func(*transfer.Options)) (*transfer.DescribeConnectorOutput, error)
	UpdateConnector(ctx context.Context, in *transfer.UpdateConnectorInput, opts ...func(*transfer.Options)) (*transfer.UpdateConnectorOutput, error)
	TestConnection(ctx context.Context, in *transfer.TestConnectionInput, opts ...func(*transfer.Options)) (*transfer.TestConnectionOutput, error)
	StartFileTransfer(ctx context.Context, in *transfer.StartFileTransferInput, opts ...func(*transfer.Options)) (*transfer.StartFileTransferOutput, error)
	StartDirectoryListing(ctx context.Context, in *transfer.StartDirectoryListingInput, opts ...func(*transfer.Options)) (*transfer.StartDirectoryListingOutput, error)
	DescribeExecution(ctx context.Context, in *transfer.DescribeExecutionInput, opts ...func(*transfer.Options)) (*transfer.DescribeExecutionOutput, error)
	ListFileTransferResults(ctx context.Context, in *transfer.ListFileTransferResultsInput, opts ...func(*transfer.Options)) (*transfer.ListFileTransferResultsOutput, error)
}

// Directory listings run as asynchronous executions; poll until one settles.
var (
	listingPollInterval = 2 * time.Second
	listingPollAttempts = 30
)

// RealClient implements Client against the AWS Transfer Family API.
type RealClient struct {
	api api
}

// NewRealClient creates a Transfer Family client for the given region using
// the default AWS credential chain. An empty region defers to the chain's
// region resolution.
func NewRealClient(ctx context.Context, region string) (*RealClient, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &RealClient{api: transfer.NewFromConfig(cfg)}, nil
}

// DescribeConnector returns the current configuration of the connector.
func (c *RealClient) DescribeConnector(ctx context.Context, connectorID string) (*ConnectorInfo, error) {
	out, err := c.api.DescribeConnector(ctx, &transfer.DescribeConnectorInput{
		ConnectorId: aws.String(connectorID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe connector %s: %w", connectorID, err)
	}
	if out.Connector == nil {
		return nil, fmt.Errorf("describe connector %s: empty response", connectorID)
	}
	return connectorFromDescribed(out.Connector), nil
}

// UpdateTrustedHostKeys replaces the connector's trusted host key set.
func (c *RealClient) UpdateTrustedHostKeys(ctx context.Context, info *ConnectorInfo, keys []string) error {
	in := &transfer.UpdateConnectorInput{
		ConnectorId: aws.String(info.ID),
		Url:         aws.String(info.URL),
		AccessRole:  aws.String(info.AccessRole),
		SftpConfig: &types.SftpConnectorConfig{
			TrustedHostKeys: keys,
		},
	}
	if info.LoggingRole != "" {
		in.LoggingRole = aws.String(info.LoggingRole)
	}
	if info.SecurityPolicy != "" {
		in.SecurityPolicyName = aws.String(info.SecurityPolicy)
	}
	if info.SecretID != "" {
		in.SftpConfig.UserSecretId = aws.String(info.SecretID)
	}

	if _, err := c.api.UpdateConnector(ctx, in); err != nil {
		return fmt.Errorf("failed to update connector %s: %w", info.ID, err)
	}
	return nil
}

// TestConnection issues a connectivity test against the connector. API-level
// failures are returned as errors; a test that ran and reported ERROR is a
// normal result.
func (c *RealClient) TestConnection(ctx context.Context, connectorID string) (*ProbeResult, error) {
	out, err := c.api.TestConnection(ctx, &transfer.TestConnectionInput{
		ConnectorId: aws.String(connectorID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to test connection for connector %s: %w", connectorID, err)
	}
	return probeFromOutput(out), nil
}

// StartRetrieve starts a retrieval of remotePaths into localDir.
func (c *RealClient) StartRetrieve(ctx context.Context, connectorID string, remotePaths []string, localDir string) (string, error) {
	out, err := c.api.StartFileTransfer(ctx, &transfer.StartFileTransferInput{
		ConnectorId:        aws.String(connectorID),
		RetrieveFilePaths:  remotePaths,
		LocalDirectoryPath: aws.String(localDir),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start retrieve on connector %s: %w", connectorID, err)
	}
	return aws.ToString(out.TransferId), nil
}

// StartSend starts a push of sendPaths to the remote endpoint.
func (c *RealClient) StartSend(ctx context.Context, connectorID string, sendPaths []string) (string, error) {
	out, err := c.api.StartFileTransfer(ctx, &transfer.StartFileTransferInput{
		ConnectorId:   aws.String(connectorID),
		SendFilePaths: sendPaths,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start send on connector %s: %w", connectorID, err)
	}
	return aws.ToString(out.TransferId), nil
}

// ListDirectory lists the files under remoteDir on the remote endpoint. The
// listing runs asynchronously; the call polls until the execution settles.
func (c *RealClient) ListDirectory(ctx context.Context, connectorID, remoteDir, outputDir string) ([]string, error) {
	out, err := c.api.StartDirectoryListing(ctx, &transfer.StartDirectoryListingInput{
		ConnectorId:         aws.String(connectorID),
		RemoteDirectoryPath: aws.String(remoteDir),
		OutputDirectoryPath: aws.String(outputDir),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start directory listing on connector %s: %w", connectorID, err)
	}
	listingID := aws.ToString(out.ListingId)

	for attempt := 0; attempt < listingPollAttempts; attempt++ {
		desc, err := c.api.DescribeExecution(ctx, &transfer.DescribeExecutionInput{
			ExecutionId: aws.String(listingID),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe listing %s: %w", listingID, err)
		}
		if desc.Execution == nil {
			return nil, fmt.Errorf("describe listing %s: empty response", listingID)
		}

		switch desc.Execution.Status {
		case types.ExecutionStatusCompleted:
			return listedFilePaths(desc.Execution.Results), nil
		case types.ExecutionStatusInProgress:
		default:
			return nil, fmt.Errorf("directory listing %s failed with status %s", listingID, desc.Execution.Status)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(listingPollInterval):
		}
	}

	return nil, fmt.Errorf("directory listing %s timed out", listingID)
}

// ListTransferResults returns the per-file outcomes of a started transfer,
// following pagination.
func (c *RealClient) ListTransferResults(ctx context.Context, connectorID, transferID string) ([]FileResult, error) {
	var results []FileResult
	var next *string
	for {
		out, err := c.api.ListFileTransferResults(ctx, &transfer.ListFileTransferResultsInput{
			ConnectorId: aws.String(connectorID),
			TransferId:  aws.String(transferID),
			NextToken:   next,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list results for transfer %s: %w", transferID, err)
		}
		for _, r := range out.FileTransferResults {
			results = append(results, FileResult{
				FilePath:       aws.ToString(r.FilePath),
				Status:         FileResultStatus(r.StatusCode),
				FailureMessage: aws.ToString(r.FailureMessage),
			})
		}
		if aws.ToString(out.NextToken) == "" {
			return results, nil
		}
		next = out.NextToken
	}
}

func connectorFromDescribed(d *types.DescribedConnector) *ConnectorInfo {
	info := &ConnectorInfo{
		ID:             aws.ToString(d.ConnectorId),
		URL:            aws.ToString(d.Url),
		AccessRole:     aws.ToString(d.AccessRole),
		LoggingRole:    aws.ToString(d.LoggingRole),
		SecurityPolicy: aws.ToString(d.SecurityPolicyName),
		EgressIPs:      d.ServiceManagedEgressIpAddresses,
	}
	if d.SftpConfig != nil {
		info.SecretID = aws.ToString(d.SftpConfig.UserSecretId)
		info.TrustedHostKeys = d.SftpConfig.TrustedHostKeys
	}
	return info
}

func probeFromOutput(out *transfer.TestConnectionOutput) *ProbeResult {
	res := &ProbeResult{
		Status:  ProbeStatus(aws.ToString(out.Status)),
		Message: aws.ToString(out.StatusMessage),
	}
	if out.SftpConnectionDetails != nil {
		res.HostKey = aws.ToString(out.SftpConnectionDetails.HostKey)
	}
	return res
}

// listedFilePaths extracts the discovered remote paths from a completed
// listing execution. The LIST step carries them as a JSON document.
func listedFilePaths(results *types.ExecutionResults) []string {
	if results == nil {
		return nil
	}
	var paths []string
	for _, step := range results.Steps {
		if string(step.StepType) != "LIST" || step.Outputs == nil {
			continue
		}
		var outputs struct {
			FilePaths []string
		}
		if err := json.Unmarshal([]byte(*step.Outputs), &outputs); err != nil {
			continue
		}
		paths = append(paths, outputs.FilePaths...)
	}
	return paths
}
