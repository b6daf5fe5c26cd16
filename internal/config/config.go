package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string
	Port            string
	DatabaseDriver  string
	DatabasePath    string
	DatabaseURL     string
	SessionSecret   string
	GinMode         string
	AdminEmail      string
	LogLevel        string
	SentryDSN       string
	Environment     string
	UploadDir       string
	UploadURLPath   string
	S3              S3Config
	SMTP            SMTPConfig
	CacheTTL        time.Duration
	RollupSchedule  string
	RollupRetention time.Duration
	ShutdownGrace   time.Duration
}

// S3Config configures the optional object-storage backend for thumbnails.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
}

// Enabled reports whether uploads should go to S3 instead of the local disk.
func (c S3Config) Enabled() bool {
	return strings.TrimSpace(c.Bucket) != ""
}

// SMTPConfig configures contact-form notification emails.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ContactTo string
	UseSSL    bool
}

// Enabled reports whether notification emails can be sent.
func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.ContactTo) != ""
}

const (
	defaultPort            = "8080"
	defaultDatabaseDriver  = "sqlite"
	defaultDatabasePath    = "portfolio.db"
	defaultSessionSecret   = "portfolio-dev-secret"
	defaultGinMode         = "release"
	defaultAdminEmail      = "admin@example.com"
	defaultLogLevel        = "info"
	defaultEnvironment     = "development"
	defaultUploadDir       = "web/static/uploads"
	defaultUploadURLPath   = "/static/uploads"
	defaultSMTPPort        = 587
	defaultCacheTTL        = 5 * time.Minute
	defaultRollupSchedule  = "@daily"
	defaultRollupRetention = 30 * 24 * time.Hour
	defaultShutdownGrace   = 10 * time.Second
)

// Load 从环境变量（以及可选的 portfolio.yaml）读取应用配置，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	return LoadFrom(viper.New(), "")
}

// LoadFrom reads configuration through the supplied viper instance. When
// configFile is empty, ./portfolio.yaml is used if present.
func LoadFrom(v *viper.Viper, configFile string) (AppConfig, error) {
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !eris.As(err, &notFound) {
			return AppConfig{}, eris.Wrap(err, "reading config file")
		}
	}

	port := strings.TrimSpace(v.GetString("port"))
	if port == "" {
		port = defaultPort
	}

	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("database_driver")))
	if driver != "sqlite" && driver != "postgres" {
		return AppConfig{}, eris.Errorf("invalid DATABASE_DRIVER value: %s", driver)
	}
	if driver == "postgres" && strings.TrimSpace(v.GetString("database_url")) == "" {
		return AppConfig{}, eris.New("DATABASE_URL is required when DATABASE_DRIVER=postgres")
	}

	cacheTTL, err := durationValue(v, "cache_ttl")
	if err != nil {
		return AppConfig{}, err
	}
	retention, err := durationValue(v, "analytics_retention")
	if err != nil {
		return AppConfig{}, err
	}
	shutdownGrace, err := durationValue(v, "shutdown_grace")
	if err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabaseDriver: driver,
		DatabasePath:   strings.TrimSpace(v.GetString("database_path")),
		DatabaseURL:    strings.TrimSpace(v.GetString("database_url")),
		SessionSecret:  strings.TrimSpace(v.GetString("session_secret")),
		GinMode:        strings.TrimSpace(v.GetString("gin_mode")),
		AdminEmail:     strings.ToLower(strings.TrimSpace(v.GetString("admin_email"))),
		LogLevel:       strings.TrimSpace(v.GetString("log_level")),
		SentryDSN:      strings.TrimSpace(v.GetString("sentry_dsn")),
		Environment:    strings.TrimSpace(v.GetString("environment")),
		UploadDir:      strings.TrimSpace(v.GetString("upload_dir")),
		UploadURLPath:  strings.TrimSpace(v.GetString("upload_url_path")),
		S3: S3Config{
			Bucket:    strings.TrimSpace(v.GetString("s3_bucket")),
			Region:    strings.TrimSpace(v.GetString("s3_region")),
			Endpoint:  strings.TrimSpace(v.GetString("s3_endpoint")),
			PublicURL: strings.TrimRight(strings.TrimSpace(v.GetString("s3_public_url")), "/"),
		},
		SMTP: SMTPConfig{
			Host:      strings.TrimSpace(v.GetString("smtp_host")),
			Port:      v.GetInt("smtp_port"),
			Username:  strings.TrimSpace(v.GetString("smtp_username")),
			Password:  v.GetString("smtp_password"),
			From:      strings.TrimSpace(v.GetString("smtp_from")),
			ContactTo: strings.TrimSpace(v.GetString("contact_to")),
			UseSSL:    v.GetBool("smtp_ssl"),
		},
		CacheTTL:        cacheTTL,
		RollupSchedule:  strings.TrimSpace(v.GetString("analytics_rollup_schedule")),
		RollupRetention: retention,
		ShutdownGrace:   shutdownGrace,
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("listen_addr", "")
	v.SetDefault("database_driver", defaultDatabaseDriver)
	v.SetDefault("database_path", defaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("session_secret", defaultSessionSecret)
	v.SetDefault("gin_mode", defaultGinMode)
	v.SetDefault("admin_email", defaultAdminEmail)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("environment", defaultEnvironment)
	v.SetDefault("upload_dir", defaultUploadDir)
	v.SetDefault("upload_url_path", defaultUploadURLPath)
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_public_url", "")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", defaultSMTPPort)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_from", "")
	v.SetDefault("smtp_ssl", false)
	v.SetDefault("contact_to", "")
	v.SetDefault("cache_ttl", defaultCacheTTL.String())
	v.SetDefault("analytics_rollup_schedule", defaultRollupSchedule)
	v.SetDefault("analytics_retention", defaultRollupRetention.String())
	v.SetDefault("shutdown_grace", defaultShutdownGrace.String())
}

func durationValue(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", strings.ToUpper(key), raw)
	}
	if d <= 0 {
		return 0, eris.Errorf("%s must be positive", strings.ToUpper(key))
	}
	return d, nil
}
