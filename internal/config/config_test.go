package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != ModeStdio {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.Version != "1.0.0" {
		t.Errorf("Expected default version to be '1.0.0', got '%s'", cfg.Version)
	}

	if cfg.ServerName != "cms-sif-converter" {
		t.Errorf("Expected default server name to be 'cms-sif-converter', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}

	if cfg.Flatten {
		t.Error("Expected flatten to be disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid config - convert mode",
			config: &Config{
				Mode:         ModeConvert,
				SourcePath:   "/tmp/report.pdf",
				TemplatePath: "/tmp/template.pdf",
				LogLevel:     "info",
				MaxFileSize:  1024,
			},
			wantErr: false,
		},
		{
			name: "convert mode without source",
			config: &Config{
				Mode:         ModeConvert,
				TemplatePath: "/tmp/template.pdf",
				LogLevel:     "info",
				MaxFileSize:  1024,
			},
			wantErr: true,
		},
		{
			name: "convert mode without template",
			config: &Config{
				Mode:        ModeConvert,
				SourcePath:  "/tmp/report.pdf",
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "valid config - preview mode",
			config: &Config{
				Mode:        ModePreview,
				SourcePath:  "/tmp/report.pdf",
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: false,
		},
		{
			name: "preview mode without source",
			config: &Config{
				Mode:        ModePreview,
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "valid config - validate mode",
			config: &Config{
				Mode:         ModeValidate,
				TemplatePath: "/tmp/template.pdf",
				LogLevel:     "info",
				MaxFileSize:  1024,
			},
			wantErr: false,
		},
		{
			name: "validate mode without template",
			config: &Config{
				Mode:        ModeValidate,
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "invalid mode",
			config: &Config{
				Mode:        "invalid",
				LogLevel:    "info",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			config: &Config{
				Mode:        ModeStdio,
				LogLevel:    "invalid",
				MaxFileSize: 1024,
			},
			wantErr: true,
		},
		{
			name: "invalid max file size",
			config: &Config{
				Mode:        ModeStdio,
				LogLevel:    "info",
				MaxFileSize: 0,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateLogLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error"}
	invalidLevels := []string{"DEBUG", "INFO", "trace", "fatal", ""}

	for _, level := range validLevels {
		t.Run("valid_"+level, func(t *testing.T) {
			cfg := &Config{
				Mode:        ModeStdio,
				LogLevel:    level,
				MaxFileSize: 1024,
			}

			if err := cfg.Validate(); err != nil {
				t.Errorf("Config.Validate() should accept log level '%s', got error: %v", level, err)
			}
		})
	}

	for _, level := range invalidLevels {
		t.Run("invalid_"+level, func(t *testing.T) {
			cfg := &Config{
				Mode:        ModeStdio,
				LogLevel:    level,
				MaxFileSize: 1024,
			}

			if err := cfg.Validate(); err == nil {
				t.Errorf("Config.Validate() should reject log level '%s'", level)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     bool
	}{
		{
			name:     "debug level",
			logLevel: "debug",
			want:     true,
		},
		{
			name:     "info level",
			logLevel: "info",
			want:     false,
		},
		{
			name:     "warn level",
			logLevel: "warn",
			want:     false,
		},
		{
			name:     "error level",
			logLevel: "error",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			if got := cfg.IsDebug(); got != tt.want {
				t.Errorf("Config.IsDebug() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigIsStdioMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
		want bool
	}{
		{
			name: "stdio mode",
			mode: ModeStdio,
			want: true,
		},
		{
			name: "convert mode",
			mode: ModeConvert,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Mode: tt.mode}
			if got := cfg.IsStdioMode(); got != tt.want {
				t.Errorf("Config.IsStdioMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Mode:         ModeConvert,
		SourcePath:   "/home/user/report.pdf",
		TemplatePath: "/home/user/template.pdf",
		OutputPath:   "/home/user/filled.pdf",
		LogLevel:     "debug",
		MaxFileSize:  1024,
	}

	result := cfg.String()

	expectedSubstrings := []string{
		"Mode: convert",
		"Source: /home/user/report.pdf",
		"Template: /home/user/template.pdf",
		"Output: /home/user/filled.pdf",
		"LogLevel: debug",
		"MaxFileSize: 1024",
	}

	for _, substr := range expectedSubstrings {
		if !strings.Contains(result, substr) {
			t.Errorf("Config.String() result doesn't contain expected substring: %s\nGot: %s", substr, result)
		}
	}
}
