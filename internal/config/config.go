package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeConvert = "convert"
	ModeServer  = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultFormat      = "xlsx"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB
)

// Config holds all configuration for the heatsheet converter
type Config struct {
	// Mode selection
	Mode string // "convert" for one-shot conversion, "server" for the upload API

	// Convert mode
	InputPath  string
	OutputPath string
	Format     string // xlsx, csv or tsv

	// Server mode
	Host string
	Port int

	// Application configuration
	Version          string
	LogLevel         string
	MaxFileSize      int64 // Maximum PDF file size in bytes
	MaxHeatsPerEvent int   // Per-event heat cap; 0 means unlimited
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:             ModeConvert,
		Format:           DefaultFormat,
		Host:             DefaultHost,
		Port:             DefaultPort,
		Version:          "1.0.0",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
		MaxHeatsPerEvent: 0,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}

	// Output defaults to the input path with the format's extension
	if cfg.Mode == ModeConvert && cfg.OutputPath == "" && cfg.InputPath != "" {
		cfg.OutputPath = strings.TrimSuffix(cfg.InputPath, filepath.Ext(cfg.InputPath)) + "." + cfg.Format
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("HEATSHEET")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("in", cfg.InputPath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("format", cfg.Format)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxheats", cfg.MaxHeatsPerEvent)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'convert' for one-shot conversion, 'server' for the upload API")
	pflag.String("in", cfg.InputPath, "Input program PDF (convert mode)")
	pflag.String("out", cfg.OutputPath, "Output path (convert mode; defaults to the input with the format extension)")
	pflag.String("format", cfg.Format, "Output format: xlsx, csv or tsv")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("maxheats", cfg.MaxHeatsPerEvent, "Maximum heats kept per event (0 = unlimited)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("in", pflag.Lookup("in"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("maxheats", pflag.Lookup("maxheats"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nheatsheet - converts swim meet program PDFs into heats spreadsheets\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --in=program.pdf                          "+
			"# writes program.xlsx next to the input\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --in=program.pdf --format=csv             "+
			"# heats CSV plus an alternates CSV\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server                             # upload API on 127.0.0.1:8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081  # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_FORMAT      Output format\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_MAXFILESIZE Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  HEATSHEET_MAXHEATS    Maximum heats per event\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.InputPath = viper.GetString("in")
	cfg.OutputPath = viper.GetString("out")
	cfg.Format = viper.GetString("format")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxHeatsPerEvent = viper.GetInt("maxheats")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeConvert && c.Mode != ModeServer {
		return errors.New("mode must be either 'convert' or 'server'")
	}

	// Convert mode needs an input file
	if c.Mode == ModeConvert && c.InputPath == "" {
		return errors.New("convert mode requires an input PDF (--in)")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate output format
	switch c.Format {
	case "xlsx", "csv", "tsv":
	default:
		return fmt.Errorf("invalid format: %s (must be one of: xlsx, csv, tsv)", c.Format)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate heat cap
	if c.MaxHeatsPerEvent < 0 {
		return errors.New("maximum heats per event cannot be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, InputPath: %s, OutputPath: %s, Format: %s, Host: %s, Port: %d, LogLevel: %s, MaxFileSize: %d, MaxHeatsPerEvent: %d}",
		c.Mode, c.InputPath, c.OutputPath, c.Format, c.Host, c.Port, c.LogLevel, c.MaxFileSize, c.MaxHeatsPerEvent)
}

// IsServerMode returns true if the upload API should be started
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsConvertMode returns true if a one-shot conversion should run
func (c *Config) IsConvertMode() bool {
	return c.Mode == ModeConvert
}
