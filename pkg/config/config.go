package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/c9s/mtcli/pkg/indicator"
	"github.com/c9s/mtcli/pkg/types"
)

// DefaultConfigFile is loaded when no config file is given and it exists in the working directory
const DefaultConfigFile = "mtcli.yaml"

const (
	DefaultSymbol    = "WINQ25"
	DefaultDays      = 5
	DefaultPeriod    = 5
	DefaultExchange  = "metatrader"
	DefaultOutputDir = "."
)

type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

func (c DatabaseConfig) Enabled() bool {
	return c.Driver != "" && c.DSN != ""
}

type ScheduleConfig struct {
	// Cron is the spec with the seconds field, e.g. "0 */5 * * * *"
	Cron string `json:"cron" yaml:"cron"`
}

type Config struct {
	Exchange  string `json:"exchange" yaml:"exchange"`
	Symbol    string `json:"symbol" yaml:"symbol"`
	Days      int    `json:"days" yaml:"days"`
	Period    int    `json:"period" yaml:"period"`
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	Save      bool   `json:"save" yaml:"save"`

	SaveKLines bool `json:"saveKLines" yaml:"saveKLines"`

	MACD indicator.MACDConfig `json:"macd" yaml:"macd"`

	Database DatabaseConfig `json:"database" yaml:"database"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
}

func Default() *Config {
	return &Config{
		Exchange:  DefaultExchange,
		Symbol:    DefaultSymbol,
		Days:      DefaultDays,
		Period:    DefaultPeriod,
		OutputDir: DefaultOutputDir,
		MACD:      indicator.DefaultMACDConfig,
	}
}

// Load reads the yaml file over the default values, the keys absent from the file keep the defaults.
func Load(configFile string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", configFile)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", configFile)
	}

	config.MACD = config.MACD.WithDefaults()
	return config, nil
}

// LoadOrDefault loads the given file, or the default file when it exists, otherwise the defaults are returned.
func LoadOrDefault(configFile string) (*Config, error) {
	if configFile != "" {
		return Load(configFile)
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return Load(DefaultConfigFile)
	}

	return Default(), nil
}

// Validate checks the settings that do not depend on the invocation,
// the period and the days are validated by the runner.
func (c *Config) Validate() error {
	if _, err := types.ValidExchangeName(c.Exchange); err != nil {
		return err
	}

	if c.Symbol == "" {
		return errors.New("symbol is required")
	}

	if c.MACD.ShortPeriod >= c.MACD.LongPeriod {
		return errors.Errorf("macd fast window %d must be shorter than the slow window %d", c.MACD.ShortPeriod, c.MACD.LongPeriod)
	}

	if (c.Database.Driver == "") != (c.Database.DSN == "") {
		return errors.New("database driver and dsn must be configured together")
	}

	return nil
}
