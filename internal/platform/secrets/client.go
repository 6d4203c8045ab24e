// Package secrets provides the Secrets Manager preflight for connector
// credentials. It distinguishes a secret that does not exist (a configuration
// error) from one that exists but is not yet readable by the transfer service
// (a transient propagation condition handled by the bootstrap retry loop).
package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"
)

// api is the subset of the SDK client used by Client. Narrowed for tests.
type api interface {
	DescribeSecret(ctx context.Context, in *secretsmanager.DescribeSecretInput, opts ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

// Client wraps the Secrets Manager client.
type Client struct {
	api api
}

// NewClient creates a Secrets Manager client using the default AWS
// credential chain.
func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{api: secretsmanager.NewFromConfig(cfg)}, nil
}

// SecretExists checks that the connector's credential secret exists.
func (c *Client) SecretExists(ctx context.Context, secretID string) (bool, error) {
	_, err := c.api.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe secret %s: %w", secretID, err)
	}
	return true, nil
}

func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.ResourceNotFoundException
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}

	return false
}
