package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConnectorID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "c-0123456789abcdef0"},
		{name: "empty", input: "", wantErr: errConnectorIDRequired},
		{name: "wrong prefix", input: "s-0123456789abcdef0", wantErr: errConnectorIDInvalid},
		{name: "too short", input: "c-0123456789abcdef", wantErr: errConnectorIDInvalid},
		{name: "uppercase hex", input: "c-0123456789ABCDEF0", wantErr: errConnectorIDInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConnectorID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	assert.ErrorIs(t, validateEndpoint(""), errEndpointRequired)
	assert.Error(t, validateEndpoint("ftp://bad.example"))
	assert.NoError(t, validateEndpoint("sftp://sftp.partner.example:2222"))
	assert.NoError(t, validateEndpoint("sftp.partner.example"))
}

func TestValidateBucketAndTable(t *testing.T) {
	assert.ErrorIs(t, validateBucket("  "), errBucketRequired)
	assert.NoError(t, validateBucket("partner-landing"))
	assert.ErrorIs(t, validateTable(""), errTableRequired)
	assert.NoError(t, validateTable("partner-files"))
}
