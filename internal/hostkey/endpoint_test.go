package hostkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{
			name:     "bare hostname",
			target:   "sftp.example.com",
			wantHost: "sftp.example.com",
			wantPort: 22,
		},
		{
			name:     "hostname with port",
			target:   "sftp.example.com:2222",
			wantHost: "sftp.example.com",
			wantPort: 2222,
		},
		{
			name:     "sftp URL",
			target:   "sftp://sftp.example.com",
			wantHost: "sftp.example.com",
			wantPort: 22,
		},
		{
			name:     "sftp URL with port and path",
			target:   "sftp://sftp.example.com:990/upload/in",
			wantHost: "sftp.example.com",
			wantPort: 990,
		},
		{
			name:     "IP address",
			target:   "192.0.2.10:22",
			wantHost: "192.0.2.10",
			wantPort: 22,
		},
		{
			name:     "surrounding whitespace trimmed",
			target:   "  sftp.example.com  ",
			wantHost: "sftp.example.com",
			wantPort: 22,
		},
		{
			name:    "empty",
			target:  "",
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			target:  "https://example.com",
			wantErr: true,
		},
		{
			name:    "embedded whitespace",
			target:  "sftp://exa mple.com",
			wantErr: true,
		},
		{
			name:    "user info",
			target:  "sftp://user@example.com",
			wantErr: true,
		},
		{
			name:    "bad port",
			target:  "example.com:99999",
			wantErr: true,
		},
		{
			name:    "non-numeric port",
			target:  "example.com:ssh",
			wantErr: true,
		},
		{
			name:    "missing host",
			target:  "sftp://:22",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := ParseEndpoint(tt.target)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, ep.Host)
			assert.Equal(t, tt.wantPort, ep.Port)
		})
	}
}

func TestEndpointAddr(t *testing.T) {
	assert.Equal(t, "sftp.example.com:22", Endpoint{Host: "sftp.example.com", Port: 22}.Addr())
	assert.Equal(t, "[2001:db8::1]:2222", Endpoint{Host: "2001:db8::1", Port: 2222}.Addr())
}
