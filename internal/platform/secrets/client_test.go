package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	err error
}

func (s *stubAPI) DescribeSecret(_ context.Context, _ *secretsmanager.DescribeSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &secretsmanager.DescribeSecretOutput{}, nil
}

func TestSecretExists(t *testing.T) {
	c := &Client{api: &stubAPI{}}
	ok, err := c.SecretExists(context.Background(), "sftp-creds")
	require.NoError(t, err)
	assert.True(t, ok)

	c = &Client{api: &stubAPI{err: &types.ResourceNotFoundException{}}}
	ok, err = c.SecretExists(context.Background(), "sftp-creds")
	require.NoError(t, err)
	assert.False(t, ok)

	c = &Client{api: &stubAPI{err: errors.New("access denied")}}
	_, err = c.SecretExists(context.Background(), "sftp-creds")
	assert.Error(t, err)
}
