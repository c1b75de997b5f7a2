package main

import (
	"flag"

	"github.com/ilyakaznacheev/cleanenv"

	configpkg "github.com/idudko/login-checker/internal/config"
)

const (
	defaultCount  = 1_000_000
	defaultOutput = "./data/logins.txt"
	defaultMinLen = 5
	defaultMaxLen = 12
)

// JSONConfig is the shape of the optional -config file.
type JSONConfig struct {
	Count     int    `json:"count"`
	Output    string `json:"output"`
	Seed      int64  `json:"seed"`
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
	LogLevel  string `json:"log_level"`
}

type Config struct {
	Count      int    `env:"COUNT" env-description:"number of unique logins to generate"`
	Output     string `env:"OUTPUT" env-description:"path of the login file to write"`
	Seed       int64  `env:"SEED" env-description:"random seed, 0 picks one"`
	MinLength  int    `env:"MIN_LENGTH" env-description:"shortest random-letters login"`
	MaxLength  int    `env:"MAX_LENGTH" env-description:"longest random-letters login"`
	LogLevel   string `env:"LOG_LEVEL" env-description:"zerolog level"`
	configFile string
}

var config = Config{
	Count:     defaultCount,
	Output:    defaultOutput,
	MinLength: defaultMinLen,
	MaxLength: defaultMaxLen,
	LogLevel:  "info",
}

// Init fills config from, in increasing priority: defaults, the JSON config
// file (-c/-config or CONFIG), environment variables and flags.
func Init(args []string) error {
	fset := flag.NewFlagSet("generate", flag.ContinueOnError)
	fset.IntVar(&config.Count, "n", config.Count, "Number of unique logins")
	fset.StringVar(&config.Output, "o", config.Output, "Output file")
	fset.Int64Var(&config.Seed, "s", config.Seed, "Random seed (0 = random)")
	fset.IntVar(&config.MinLength, "min", config.MinLength, "Minimum random-letters login length")
	fset.IntVar(&config.MaxLength, "max", config.MaxLength, "Maximum random-letters login length")
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

func applyConfig(cfg *JSONConfig) {
	configpkg.ApplyIntIfDefault(&config.Count, defaultCount, cfg.Count)
	configpkg.ApplyStringIfDefault(&config.Output, defaultOutput, cfg.Output)
	configpkg.ApplyIntIfDefault(&config.MinLength, defaultMinLen, cfg.MinLength)
	configpkg.ApplyIntIfDefault(&config.MaxLength, defaultMaxLen, cfg.MaxLength)
	configpkg.ApplyStringIfDefault(&config.LogLevel, "info", cfg.LogLevel)
	if cfg.Seed != 0 && config.Seed == 0 {
		config.Seed = cfg.Seed
	}
}
