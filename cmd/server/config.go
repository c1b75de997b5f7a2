package main

import (
	"flag"

	"github.com/ilyakaznacheev/cleanenv"

	configpkg "github.com/idudko/login-checker/internal/config"
	"github.com/idudko/login-checker/internal/repository"
)

const (
	defaultAddress         = "localhost:8080"
	defaultShutdownTimeout = 10
)

// JSONConfig is the shape of the optional -config file.
type JSONConfig struct {
	Address         string `json:"address"`
	Restore         bool   `json:"restore"`
	StoreFile       string `json:"store_file"`
	DatabaseDSN     string `json:"database_dsn"`
	Migrations      string `json:"migrations"`
	AuditFile       string `json:"audit_file"`
	AuditURL        string `json:"audit_url"`
	TrustedSubnet   string `json:"trusted_subnet"`
	ShutdownTimeout string `json:"shutdown_timeout"`
	LogLevel        string `json:"log_level"`
}

type Config struct {
	Address         string `env:"ADDRESS" env-description:"HTTP listen address"`
	FileStoragePath string `env:"STORE_FILE" env-description:"JSON file runs are kept in"`
	Restore         bool   `env:"RESTORE" env-description:"load runs from STORE_FILE on start"`
	DSN             string `env:"DATABASE_DSN" env-description:"PostgreSQL DSN, takes precedence over STORE_FILE"`
	Migrations      string `env:"MIGRATIONS" env-description:"golang-migrate source URL"`
	Key             string `env:"KEY" env-description:"HMAC key request bodies are checked against"`
	AuditFile       string `env:"AUDIT_FILE" env-description:"file audit events are appended to"`
	AuditURL        string `env:"AUDIT_URL" env-description:"URL audit events are posted to"`
	TrustedSubnet   string `env:"TRUSTED_SUBNET" env-description:"CIDR allowed in X-Real-IP"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" env-description:"graceful shutdown timeout in seconds"`
	LogLevel        string `env:"LOG_LEVEL" env-description:"zerolog level"`
	configFile      string
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		Address:         defaultAddress,
		Restore:         true,
		Migrations:      repository.DefaultMigrationsPath,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        "info",
	}
}

// Init fills config from, in increasing priority: defaults, the JSON config
// file (-c/-config or CONFIG), environment variables and flags.
func Init(args []string) error {
	fset := flag.NewFlagSet("server", flag.ContinueOnError)
	fset.StringVar(&config.Address, "a", config.Address, "HTTP address to listen on")
	fset.StringVar(&config.FileStoragePath, "f", config.FileStoragePath, "Path to file storage")
	fset.BoolVar(&config.Restore, "r", config.Restore, "Restore runs from file")
	fset.StringVar(&config.DSN, "d", config.DSN, "PostgreSQL DSN")
	fset.StringVar(&config.Migrations, "m", config.Migrations, "Migrations source URL")
	fset.StringVar(&config.Key, "k", config.Key, "Key for checking request signatures")
	fset.StringVar(&config.AuditFile, "audit-file", config.AuditFile, "Path to audit log file")
	fset.StringVar(&config.AuditURL, "audit-url", config.AuditURL, "URL for audit server")
	fset.StringVar(&config.TrustedSubnet, "t", config.TrustedSubnet, "Trusted subnet in CIDR notation")
	fset.IntVar(&config.ShutdownTimeout, "shutdown-timeout", config.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fset.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level")
	fset.StringVar(&config.configFile, "c", "", "Path to config file")
	fset.StringVar(&config.configFile, "config", "", "Path to config file")
	fset.Usage = cleanenv.FUsage(fset.Output(), &config, nil, fset.Usage)

	if err := fset.Parse(args); err != nil {
		return err
	}

	if configFile := configpkg.GetConfigFilePath(config.configFile); configFile != "" {
		config.configFile = configFile
		var jsonCfg JSONConfig
		if err := configpkg.LoadConfigFile(configFile, &jsonCfg); err != nil {
			return err
		}
		applyConfig(&jsonCfg)
	}

	if err := cleanenv.ReadEnv(&config); err != nil {
		return err
	}

	// Flags win over the environment.
	return fset.Parse(args)
}

// applyConfig applies JSON values to fields still at their defaults.
func applyConfig(cfg *JSONConfig) {
	defaults := defaultConfig()
	configpkg.ApplyStringIfDefault(&config.Address, defaults.Address, cfg.Address)
	configpkg.ApplyStringIfDefault(&config.FileStoragePath, "", cfg.StoreFile)
	configpkg.ApplyStringIfDefault(&config.DSN, "", cfg.DatabaseDSN)
	configpkg.ApplyStringIfDefault(&config.Migrations, defaults.Migrations, cfg.Migrations)
	configpkg.ApplyStringIfDefault(&config.AuditFile, "", cfg.AuditFile)
	configpkg.ApplyStringIfDefault(&config.AuditURL, "", cfg.AuditURL)
	configpkg.ApplyStringIfDefault(&config.TrustedSubnet, "", cfg.TrustedSubnet)
	configpkg.ApplyDurationIfDefault(&config.ShutdownTimeout, defaults.ShutdownTimeout, cfg.ShutdownTimeout)
	configpkg.ApplyStringIfDefault(&config.LogLevel, defaults.LogLevel, cfg.LogLevel)
	configpkg.ApplyBoolIfDefault(&config.Restore, cfg.Restore)
}
