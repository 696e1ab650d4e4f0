package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
	"github.com/referralhub/casemgmt/scheduled-tasks/secretmanager"
)

const (
	envConfigPath        = "MEMBERS_SYNC_CONFIG"
	envCredentials       = "MEMBERS_REMOTE_CREDENTIALS"
	envTable             = "MEMBERS_REMOTE_TABLE"
	envNotificationTopic = "MEMBERS_NOTIFICATION_TOPIC"
	envRateLimit         = "MEMBERS_REMOTE_RATE_LIMIT"
)

type Config struct {
	Table string `yaml:"table" validate:"required"`
	// DesiredFields is the projection the engine asks for when the remote supports it.
	DesiredFields []string `yaml:"desired_fields" validate:"required,min=1,dive,required"`
	// CriticalFields mark a cached schema as stale when any of them is missing from it.
	CriticalFields []string `yaml:"critical_fields" validate:"required,min=1,dive,required"`
	// WatermarkFields are candidate modification timestamp columns, first available wins.
	WatermarkFields []string `yaml:"watermark_fields" validate:"required,min=1,dive,required"`
	// KeyAliases are the historical spellings of the primary key column.
	KeyAliases []string `yaml:"key_aliases" validate:"required,min=1,dive,required"`

	PageSize        int `yaml:"page_size" validate:"min=1,max=5000"`
	MaxPages        int `yaml:"max_pages" validate:"min=1"`
	UpsertChunkSize int `yaml:"upsert_chunk_size" validate:"min=1,max=500"`
	EventChunkSize  int `yaml:"event_chunk_size" validate:"min=1,max=500"`
	MaxSearchKeys   int `yaml:"max_search_keys" validate:"min=1"`

	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int           `yaml:"burst" validate:"min=1"`
	RequestTimeout    time.Duration `yaml:"request_timeout" validate:"gt=0"`
	RetryCount        int           `yaml:"retry_count" validate:"min=0"`

	NotificationTopic string `yaml:"notification_topic"`
}

// Credentials of the remote record store API, stored as a JSON secret.
type Credentials struct {
	BaseURL      string `json:"baseUrl" validate:"required,url"`
	ClientID     string `json:"clientId" validate:"required"`
	ClientSecret string `json:"clientSecret" validate:"required"`
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Table:         "members",
		DesiredFields: domain.DesiredColumns(),
		CriticalFields: []string{
			domain.ColumnClientID,
			domain.ColumnHoldForReview,
			domain.ColumnAuthorizationStatus,
		},
		WatermarkFields: []string{
			domain.ColumnDateModified,
			"Last_Modified",
			"Modified_Date",
			"LastUpdated",
		},
		KeyAliases: []string{
			domain.ColumnClientID,
			"ClientID",
			"client_id",
			"Client_Id",
			"clientKey",
		},
		PageSize:          1000,
		MaxPages:          50,
		UpsertChunkSize:   400,
		EventChunkSize:    400,
		MaxSearchKeys:     30,
		RequestsPerSecond: 5,
		Burst:             2,
		RequestTimeout:    30 * time.Second,
		RetryCount:        2,
	}
}

// Load returns the defaults overlaid with the optional YAML file and the env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := common.GetEnv(envConfigPath, ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading members sync config: %w", err)
		}

		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parsing members sync config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Table = common.GetEnv(envTable, c.Table)
	c.NotificationTopic = common.GetEnv(envNotificationTopic, c.NotificationTopic)

	if v := common.GetEnv(envRateLimit, ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envRateLimit, v, err)
		}

		c.RequestsPerSecond = rps
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid members sync config: %w", err)
	}

	for _, f := range c.CriticalFields {
		if !containsFold(c.DesiredFields, f) {
			return fmt.Errorf("critical field %s is not a desired field", f)
		}
	}

	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}

	return false
}

// SecretAccessor reads the latest version of a secret.
type SecretAccessor func(ctx context.Context, secret secretmanager.SecretName) ([]byte, error)

// LoadCredentials reads the remote credentials from the env override or Secret Manager.
func LoadCredentials(ctx context.Context, access SecretAccessor) (*Credentials, error) {
	var raw []byte

	if v := common.GetEnv(envCredentials, ""); v != "" {
		raw = []byte(v)
	} else {
		if access == nil {
			access = secretmanager.AccessSecretLatestVersion
		}

		data, err := access(ctx, secretmanager.SecretMembersRemoteAPI)
		if err != nil {
			return nil, err
		}

		raw = data
	}

	return ParseCredentials(raw)
}

func ParseCredentials(raw []byte) (*Credentials, error) {
	if len(raw) == 0 {
		return nil, errors.New("empty remote credentials")
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("decoding remote credentials: %w", err)
	}

	creds.BaseURL = strings.TrimRight(creds.BaseURL, "/")

	if err := validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("invalid remote credentials: %w", err)
	}

	return &creds, nil
}
