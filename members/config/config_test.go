package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/secretmanager"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.PageSize)
	assert.Equal(t, 50, cfg.MaxPages)
	assert.Equal(t, 400, cfg.UpsertChunkSize)
	assert.Equal(t, 30, cfg.MaxSearchKeys)
	assert.Contains(t, cfg.CriticalFields, domain.ColumnClientID)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.yaml")

	err := os.WriteFile(path, []byte(`
table: clients
page_size: 250
request_timeout: 10s
critical_fields: [Client_ID]
`), 0o600)
	require.NoError(t, err)

	t.Setenv(envConfigPath, path)
	t.Setenv(envNotificationTopic, "member-activity")
	t.Setenv(envRateLimit, "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clients", cfg.Table)
	assert.Equal(t, 250, cfg.PageSize)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{domain.ColumnClientID}, cfg.CriticalFields)
	assert.Equal(t, "member-activity", cfg.NotificationTopic)
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, 50, cfg.MaxPages)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.yaml")

	require.NoError(t, os.WriteFile(path, []byte("page_size: 0\n"), 0o600))
	t.Setenv(envConfigPath, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_CriticalFieldMustBeDesired(t *testing.T) {
	cfg := Default()
	cfg.CriticalFields = []string{"Not_A_Column"}

	assert.Error(t, cfg.Validate())
}

func TestLoadCredentials(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		env     string
		access  SecretAccessor
		want    *Credentials
		wantErr bool
	}{
		{
			name: "env override",
			env:  `{"baseUrl":"https://records.example.com/api/","clientId":"id","clientSecret":"s"}`,
			want: &Credentials{BaseURL: "https://records.example.com/api", ClientID: "id", ClientSecret: "s"},
		},
		{
			name: "secret manager",
			access: func(ctx context.Context, secret secretmanager.SecretName) ([]byte, error) {
				assert.Equal(t, secretmanager.SecretMembersRemoteAPI, secret)
				return []byte(`{"baseUrl":"https://records.example.com","clientId":"id","clientSecret":"s"}`), nil
			},
			want: &Credentials{BaseURL: "https://records.example.com", ClientID: "id", ClientSecret: "s"},
		},
		{
			name: "secret manager failure",
			access: func(ctx context.Context, secret secretmanager.SecretName) ([]byte, error) {
				return nil, errors.New("permission denied")
			},
			wantErr: true,
		},
		{
			name:    "missing secret field",
			env:     `{"baseUrl":"https://records.example.com","clientId":"id"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envCredentials, tt.env)

			got, err := LoadCredentials(ctx, tt.access)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
