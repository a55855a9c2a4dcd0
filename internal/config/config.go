package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio    = "stdio"
	ModeConvert  = "convert"
	ModePreview  = "preview"
	ModeValidate = "validate"

	// Default values
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the CMS-to-SIF converter.
type Config struct {
	// Mode selects stdio (MCP server) or a one-shot CLI action.
	Mode string

	// Document paths for one-shot modes.
	SourcePath   string // CMS report PDF
	TemplatePath string // SIF template PDF
	OutputPath   string // filled SIF destination
	ReportPath   string // mapping report destination (empty = stdout)
	MappingPath  string // optional custom field mapping (JSON pairs)

	// Conversion options
	Flatten bool

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeStdio, // Default to stdio mode for MCP compatibility
		Version:     "1.0.0",
		ServerName:  "cms-sif-converter",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	for _, p := range []*string{&cfg.SourcePath, &cfg.TemplatePath, &cfg.OutputPath, &cfg.MappingPath} {
		if *p != "" {
			if expandedPath, err := filepath.Abs(*p); err == nil {
				*p = expandedPath
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("CMS_SIF")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("cms", cfg.SourcePath)
	viper.SetDefault("sif", cfg.TemplatePath)
	viper.SetDefault("out", cfg.OutputPath)
	viper.SetDefault("report", cfg.ReportPath)
	viper.SetDefault("mapping", cfg.MappingPath)
	viper.SetDefault("flatten", cfg.Flatten)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode,
		"Run mode: 'stdio' for the MCP server, 'convert', 'preview', or 'validate' for one-shot actions")
	pflag.String("cms", cfg.SourcePath, "Path to the CMS report PDF")
	pflag.String("sif", cfg.TemplatePath, "Path to the SIF template PDF")
	pflag.String("out", cfg.OutputPath, "Path for the filled SIF PDF (convert mode)")
	pflag.String("report", cfg.ReportPath, "Path for the mapping report JSON (default: stdout)")
	pflag.String("mapping", cfg.MappingPath, "Path to a custom field-mapping JSON file")
	pflag.Bool("flatten", cfg.Flatten, "Flatten the filled form (currently a pass-through)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("cms", pflag.Lookup("cms"))
	_ = viper.BindPFlag("sif", pflag.Lookup("sif"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("report", pflag.Lookup("report"))
	_ = viper.BindPFlag("mapping", pflag.Lookup("mapping"))
	_ = viper.BindPFlag("flatten", pflag.Lookup("flatten"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nCMS to SIF Converter - fills SIF templates from CMS report PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                         "+
			"# stdio mode, MCP server (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=convert --cms=report.pdf --sif=template.pdf --out=filled.pdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=preview --cms=report.pdf          # show extracted data\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=validate --sif=template.pdf       # check template fields\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_CMS         CMS report path\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_SIF         SIF template path\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_OUT         Output path\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  CMS_SIF_MAXFILESIZE Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.SourcePath = viper.GetString("cms")
	cfg.TemplatePath = viper.GetString("sif")
	cfg.OutputPath = viper.GetString("out")
	cfg.ReportPath = viper.GetString("report")
	cfg.MappingPath = viper.GetString("mapping")
	cfg.Flatten = viper.GetBool("flatten")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeStdio:
		// Paths arrive per tool call.
	case ModeConvert:
		if c.SourcePath == "" {
			return errors.New("convert mode requires --cms")
		}
		if c.TemplatePath == "" {
			return errors.New("convert mode requires --sif")
		}
	case ModePreview:
		if c.SourcePath == "" {
			return errors.New("preview mode requires --cms")
		}
	case ModeValidate:
		if c.TemplatePath == "" {
			return errors.New("validate mode requires --sif")
		}
	default:
		return errors.New("mode must be one of 'stdio', 'convert', 'preview', 'validate'")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

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

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsStdioMode returns true if the converter runs as an MCP stdio server.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Source: %s, Template: %s, Output: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.SourcePath, c.TemplatePath, c.OutputPath, c.LogLevel, c.MaxFileSize)
}
