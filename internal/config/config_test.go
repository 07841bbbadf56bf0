package config

import (
	"testing"
	"time"

	"github.com/flexprice/propbill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Billing.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Configuration)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(c *Configuration) {},
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Configuration) { c.Billing.Timezone = "Mars/Olympus" },
			wantErr: true,
		},
		{
			name:    "s3 output without bucket",
			mutate:  func(c *Configuration) { c.Output.Mode = types.OutputModeS3 },
			wantErr: true,
		},
		{
			name: "s3 output with bucket",
			mutate: func(c *Configuration) {
				c.Output.Mode = types.OutputModeS3
				c.S3 = S3Config{Enabled: true, Bucket: "invoices", Region: "us-east-1"}
			},
		},
		{
			name:    "local output without directory",
			mutate:  func(c *Configuration) { c.Output.Dir = ""; c.Output.Mode = types.OutputModeLocal },
			wantErr: true,
		},
		{
			name:    "unsupported template source",
			mutate:  func(c *Configuration) { c.Template.Source = "ftp" },
			wantErr: true,
		},
		{
			name:    "missing schedule",
			mutate:  func(c *Configuration) { c.Billing.Schedule = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "bill", SSLMode: "disable"}
	assert.Equal(t, "user=u password=p dbname=bill host=db port=5432 sslmode=disable", c.GetDSN())
}
