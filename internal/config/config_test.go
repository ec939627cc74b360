package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ZENDESK_SUBDOMAIN", "acme")
	t.Setenv("ZENDESK_EMAIL", "agent@acme.com")
	t.Setenv("ZENDESK_API_KEY", "tok123")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "acme", cfg.Zendesk.Subdomain)
	assert.Equal(t, "agent@acme.com", cfg.Zendesk.Email)
	assert.Equal(t, "tok123", cfg.Zendesk.APIToken)
	assert.Equal(t, 30*time.Second, cfg.Zendesk.Timeout, "timeout defaults to 30s")
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zendesk-mcp.yaml")
	content := `zendesk:
  subdomain: acme
  email: agent@acme.com
  api_token: tok123
  timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.Zendesk.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing subdomain",
			cfg:     Config{Zendesk: ZendeskConfig{Email: "a@b.c", APIToken: "t", Timeout: time.Second}},
			wantErr: "subdomain",
		},
		{
			name:    "missing email",
			cfg:     Config{Zendesk: ZendeskConfig{Subdomain: "s", APIToken: "t", Timeout: time.Second}},
			wantErr: "email",
		},
		{
			name:    "missing token",
			cfg:     Config{Zendesk: ZendeskConfig{Subdomain: "s", Email: "a@b.c", Timeout: time.Second}},
			wantErr: "token",
		},
		{
			name:    "zero timeout",
			cfg:     Config{Zendesk: ZendeskConfig{Subdomain: "s", Email: "a@b.c", APIToken: "t"}},
			wantErr: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
