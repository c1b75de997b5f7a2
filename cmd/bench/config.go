package main

import (
	"flag"
	"fmt"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/idudko/login-checker/internal/bench"
	"github.com/idudko/login-checker/internal/checker"
	configpkg "github.com/idudko/login-checker/internal/config"
)

const (
	defaultDataPath       = "./data/logins.txt"
	defaultWorkers        = 1
	defaultPublishTimeout = 30
)

// JSONConfig is the shape of the optional -config file.
type JSONConfig struct {
	DataPath       string   `json:"data_path"`
	Sizes          []int    `json:"sizes"`
	Algorithms     []string `json:"algorithms"`
	Workers        int      `json:"workers"`
	Capacity       int      `json:"capacity"`
	ErrorRate      float64  `json:"error_rate"`
	ResultsFile    string   `json:"results_file"`
	DatabaseDSN    string   `json:"database_dsn"`
	Address        string   `json:"address"`
	Key            string   `json:"key"`
	PublishTimeout string   `json:"publish_timeout"`
	LogLevel       string   `json:"log_level"`
}

type Config struct {
	DataPath       string   `env:"DATA_PATH" env-description:"login file, empty for sequential user{i} logins"`
	Sizes          []int    `env:"SIZES" env-description:"comma separated input sizes"`
	Algorithms     []string `env:"ALGORITHMS" env-description:"comma separated checker names"`
	Workers        int      `env:"WORKERS" env-description:"cells measured concurrently"`
	Capacity       int      `env:"CAPACITY" env-description:"expected logins for the filter checkers"`
	ErrorRate      float64  `env:"ERROR_RATE" env-description:"Bloom filter false positive rate"`
	ResultsFile    string   `env:"RESULTS_FILE" env-description:"JSON file the run is stored in"`
	DSN            string   `env:"DATABASE_DSN" env-description:"PostgreSQL DSN the run is stored in"`
	Address        string   `env:"ADDRESS" env-description:"results server to publish to"`
	Key            string   `env:"KEY" env-description:"HMAC key for published runs"`
	PublishTimeout int      `env:"PUBLISH_TIMEOUT" env-description:"publish timeout in seconds"`
	LogLevel       string   `env:"LOG_LEVEL" env-description:"zerolog level"`
	configFile     string
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		DataPath:       defaultDataPath,
		Sizes:          slices.Clone(bench.DefaultSizes),
		Algorithms:     checker.Algorithms(),
		Workers:        defaultWorkers,
		Capacity:       checker.DefaultCapacity,
		ErrorRate:      checker.DefaultErrorRate,
		PublishTimeout: defaultPublishTimeout,
		LogLevel:       "info",
	}
}

// Init fills config from, in increasing priority: defaults, the JSON config
// file (-c/-config or CONFIG), environment variables and flags.
func Init(args []string) error {
	fset := flag.NewFlagSet("bench", flag.ContinueOnError)
	fset.StringVar(&config.DataPath, "data", config.DataPath, "Login file (empty = sequential user{i})")
	fset.Func("sizes", "Comma separated input sizes (default 100,500,1000,2000,5000)", func(s string) error {
		sizes, err := configpkg.ParseSizes(s)
		if err != nil {
			return err
		}
		config.Sizes = sizes
		return nil
	})
	fset.Func("algorithms", "Comma separated checker names (default all)", func(s string) error {
		config.Algorithms = configpkg.ParseList(s)
		return nil
	})
	fset.IntVar(&config.Workers, "w", config.Workers, "Cells measured concurrently")
	fset.IntVar(&config.Capacity, "capacity", config.Capacity, "Expected logins for the filter checkers")
	fset.Float64Var(&config.ErrorRate, "error-rate", config.ErrorRate, "Bloom filter false positive rate")
	fset.StringVar(&config.ResultsFile, "o", config.ResultsFile, "JSON file to store the run in")
	fset.StringVar(&config.DSN, "d", config.DSN, "PostgreSQL DSN to store the run in")
	fset.StringVar(&config.Address, "a", config.Address, "Results server address (empty = do not publish)")
	fset.StringVar(&config.Key, "k", config.Key, "Key for signing published runs")
	fset.IntVar(&config.PublishTimeout, "publish-timeout", config.PublishTimeout, "Publish timeout in seconds")
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
	if err := fset.Parse(args); err != nil {
		return err
	}
	return validate()
}

// validate covers values that reach config without passing through the
// flag parsers: JSON file and environment.
func validate() error {
	if len(config.Sizes) == 0 {
		return bench.ErrEmptySuite
	}
	for _, size := range config.Sizes {
		if size <= 0 {
			return fmt.Errorf("%w: size must be positive, got %d", bench.ErrInvalidSize, size)
		}
	}
	for _, name := range config.Algorithms {
		if !checker.IsKnown(name) {
			return fmt.Errorf("%w: %s", checker.ErrUnknownAlgorithm, name)
		}
	}
	return nil
}

func applyConfig(cfg *JSONConfig) {
	defaults := defaultConfig()
	configpkg.ApplyStringIfDefault(&config.DataPath, defaults.DataPath, cfg.DataPath)
	configpkg.ApplySliceIfDefault(&config.Sizes, defaults.Sizes, cfg.Sizes)
	configpkg.ApplySliceIfDefault(&config.Algorithms, defaults.Algorithms, cfg.Algorithms)
	configpkg.ApplyIntIfDefault(&config.Workers, defaults.Workers, cfg.Workers)
	configpkg.ApplyIntIfDefault(&config.Capacity, defaults.Capacity, cfg.Capacity)
	configpkg.ApplyFloatIfDefault(&config.ErrorRate, defaults.ErrorRate, cfg.ErrorRate)
	configpkg.ApplyStringIfDefault(&config.ResultsFile, "", cfg.ResultsFile)
	configpkg.ApplyStringIfDefault(&config.DSN, "", cfg.DatabaseDSN)
	configpkg.ApplyStringIfDefault(&config.Address, "", cfg.Address)
	configpkg.ApplyStringIfDefault(&config.Key, "", cfg.Key)
	configpkg.ApplyDurationIfDefault(&config.PublishTimeout, defaults.PublishTimeout, cfg.PublishTimeout)
	configpkg.ApplyStringIfDefault(&config.LogLevel, defaults.LogLevel, cfg.LogLevel)
}
