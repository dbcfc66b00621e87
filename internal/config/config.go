// Package config provides Viper-based configuration loading for the simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/bankroll/internal/game/player"
)

// SimulationConfig holds the Monte Carlo run parameters.
type SimulationConfig struct {
	// Trials is the number of independent games to play.
	Trials int `mapstructure:"trials"`
	// RoundCap ends a trial that has seen no bankruptcy.
	RoundCap      int `mapstructure:"round_cap"`
	StartingMoney int `mapstructure:"starting_money"`
	// Workers is the number of parallel workers; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// Seed makes a run reproducible; 0 draws a random seed.
	Seed uint64 `mapstructure:"seed"`
	// Trace plays a single trial and logs every draw and event at debug level.
	Trace bool `mapstructure:"trace"`
}

// ParticipantsConfig holds the starting board index of each participant.
type ParticipantsConfig struct {
	Green  int `mapstructure:"green"`
	Red    int `mapstructure:"red"`
	Blue   int `mapstructure:"blue"`
	Yellow int `mapstructure:"yellow"`
}

// Positions returns the starting positions keyed by identity.
func (p ParticipantsConfig) Positions() map[player.Identity]int {
	return map[player.Identity]int{
		player.Green:  p.Green,
		player.Red:    p.Red,
		player.Blue:   p.Blue,
		player.Yellow: p.Yellow,
	}
}

// ReportConfig selects how the run summary is written.
type ReportConfig struct {
	// Format is "text", "json", or "yaml".
	Format string `mapstructure:"format"`
	// Output is a file path; empty or "-" writes to stdout.
	Output string `mapstructure:"output"`
}

// HistoryConfig controls persisting run summaries to PostgreSQL.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation   SimulationConfig   `mapstructure:"simulation"`
	Participants ParticipantsConfig `mapstructure:"participants"`
	Report       ReportConfig       `mapstructure:"report"`
	History      HistoryConfig      `mapstructure:"history"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := player.ValidatePositions(c.Participants.Positions()); err != nil {
		errs = append(errs, "participants: "+err.Error())
	}
	if err := validateReport(c.Report); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.Trials < 1 {
		errs = append(errs, fmt.Sprintf("simulation.trials must be >= 1, got %d", s.Trials))
	}
	if s.RoundCap < 1 {
		errs = append(errs, fmt.Sprintf("simulation.round_cap must be >= 1, got %d", s.RoundCap))
	}
	if s.StartingMoney < 1 {
		errs = append(errs, fmt.Sprintf("simulation.starting_money must be >= 1, got %d", s.StartingMoney))
	}
	if s.Workers < 0 {
		errs = append(errs, fmt.Sprintf("simulation.workers must be >= 0, got %d", s.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateReport(r ReportConfig) error {
	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[r.Format] {
		return fmt.Errorf("report.format must be one of [text, json, yaml], got %q", r.Format)
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// NewViper returns a Viper instance with defaults and BANKROLL_ environment
// overrides installed.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BANKROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.trials", 1_000_000)
	v.SetDefault("simulation.round_cap", 500)
	v.SetDefault("simulation.starting_money", player.DefaultStartingMoney)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.trace", false)

	v.SetDefault("participants.green", player.DefaultPositions[player.Green])
	v.SetDefault("participants.red", player.DefaultPositions[player.Red])
	v.SetDefault("participants.blue", player.DefaultPositions[player.Blue])
	v.SetDefault("participants.yellow", player.DefaultPositions[player.Yellow])

	v.SetDefault("report.format", "text")
	v.SetDefault("report.output", "")

	v.SetDefault("history.enabled", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "bankroll")
	v.SetDefault("database.password", "bankroll")
	v.SetDefault("database.name", "bankroll")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}
