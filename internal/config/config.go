package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flexprice/propbill/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Template   TemplateConfig   `validate:"required"`
	Output     OutputConfig     `validate:"required"`
	S3         S3Config
	Sentry     SentryConfig
	Temporal   TemporalConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

// BillingConfig drives the daily billing run
type BillingConfig struct {
	// Timezone decides which calendar day counts as "today"
	Timezone string `validate:"required"`
	// Schedule is a standard five-field cron spec for the in-process timer
	Schedule string `validate:"required"`
	// SenderName signs the generated email body
	SenderName string `validate:"required"`
	// DefaultFeeType labels the base fee when a customer has none
	DefaultFeeType string `validate:"required"`
}

// TemplateConfig locates the invoice template and sets the styling applied to substituted text
type TemplateConfig struct {
	Source   types.TemplateSourceKind `validate:"required,oneof=file s3"`
	Path     string                   `validate:"required"`
	Font     string                   `validate:"required"`
	FontSize int                      `validate:"required,min=1"`
	CacheTTL time.Duration
}

// OutputConfig decides whether batch runs persist rendered documents
type OutputConfig struct {
	Mode types.OutputMode `validate:"required,oneof=none local s3"`
	Dir  string
}

// S3Config is shared by the s3 template source and the s3 output sink
type S3Config struct {
	Enabled   bool
	Region    string
	Bucket    string
	KeyPrefix string
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64
}

type TemporalConfig struct {
	Address   string
	Namespace string
	TaskQueue string
	APIKey    string
	TLS       bool
}

func NewConfig() (*Configuration, error) {
	// .env is optional and only fills variables that are not already set
	_ = godotenv.Load()

	v := viper.New()

	// Modify config paths to ensure config.yaml is found
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/propbill")

	// Set up environment variables support
	v.SetEnvPrefix("PROPBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()
	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 10)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("postgres.connmaxlifetimeminutes", 30)
	v.SetDefault("billing.timezone", d.Billing.Timezone)
	v.SetDefault("billing.schedule", d.Billing.Schedule)
	v.SetDefault("billing.sendername", d.Billing.SenderName)
	v.SetDefault("billing.defaultfeetype", d.Billing.DefaultFeeType)
	v.SetDefault("template.source", d.Template.Source)
	v.SetDefault("template.path", d.Template.Path)
	v.SetDefault("template.font", d.Template.Font)
	v.SetDefault("template.fontsize", d.Template.FontSize)
	v.SetDefault("template.cachettl", d.Template.CacheTTL)
	v.SetDefault("output.mode", d.Output.Mode)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("temporal.taskqueue", "billing-runs")
	v.SetDefault("temporal.namespace", "default")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Billing.Location(); err != nil {
		return fmt.Errorf("invalid billing timezone %q: %w", c.Billing.Timezone, err)
	}
	if c.Template.Source == types.TemplateSourceS3 || c.Output.Mode == types.OutputModeS3 {
		if !c.S3.Enabled || c.S3.Bucket == "" {
			return fmt.Errorf("s3 must be enabled with a bucket when template source or output mode is s3")
		}
	}
	if c.Output.Mode == types.OutputModeLocal && c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required when output mode is local")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Billing: BillingConfig{
			Timezone:       "UTC",
			Schedule:       "0 6 * * *",
			SenderName:     "Linda Flood",
			DefaultFeeType: "Management Fee",
		},
		Template: TemplateConfig{
			Source:   types.TemplateSourceFile,
			Path:     "invoice_templates/base_invoice_template.docx",
			Font:     "Calibri",
			FontSize: 14,
			CacheTTL: 10 * time.Minute,
		},
		Output: OutputConfig{
			Mode: types.OutputModeNone,
			Dir:  "generated_invoices",
		},
	}
}

// Location resolves the billing timezone
func (c BillingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
