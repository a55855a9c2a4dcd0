package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldworks/cms-sif-converter/internal/config"
)

func TestPrintVersion(t *testing.T) {
	// Save original stdout
	originalStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "1.2.3"
	buildTime = "2026-08-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
		os.Stdout = originalStdout
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()

	expectedStrings := []string{
		"CMS to SIF Converter",
		"Version: 1.2.3",
		"Build Time: 2026-08-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_StdioMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	t.Run("stdio mode - debug enabled", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeStdio, LogLevel: "debug"})

		if log.Writer() != os.Stderr {
			t.Error("setupLogging() for stdio debug mode should set output to stderr")
		}
	})

	t.Run("stdio mode - debug disabled", func(t *testing.T) {
		setupLogging(&config.Config{Mode: config.ModeStdio, LogLevel: "info"})

		if log.Writer() == os.Stderr {
			t.Error("setupLogging() for stdio non-debug mode should not use stderr")
		}
	})
}

func TestSetupLogging_OneShotMode(t *testing.T) {
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	setupLogging(&config.Config{Mode: config.ModeConvert, LogLevel: "info"})

	expectedFlags := log.LstdFlags | log.Lshortfile
	if log.Flags() != expectedFlags {
		t.Errorf("setupLogging() for one-shot mode: flags = %v, want %v", log.Flags(), expectedFlags)
	}
}

func TestNewConverter(t *testing.T) {
	t.Run("default mapping", func(t *testing.T) {
		cfg := config.DefaultConfig()

		converter, err := newConverter(cfg)
		if err != nil {
			t.Fatalf("newConverter() failed: %v", err)
		}
		if converter == nil {
			t.Fatal("newConverter() returned nil converter")
		}
	})

	t.Run("custom mapping file", func(t *testing.T) {
		mappingPath := filepath.Join(t.TempDir(), "mapping.json")
		data := `[{"cms_field": "wind_farm", "sif_field": "Farm"}]`
		if err := os.WriteFile(mappingPath, []byte(data), 0o600); err != nil {
			t.Fatalf("Failed to write mapping file: %v", err)
		}

		cfg := config.DefaultConfig()
		cfg.MappingPath = mappingPath

		if _, err := newConverter(cfg); err != nil {
			t.Fatalf("newConverter() failed with custom mapping: %v", err)
		}
	})

	t.Run("missing mapping file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.MappingPath = filepath.Join(t.TempDir(), "missing.json")

		if _, err := newConverter(cfg); err == nil {
			t.Fatal("newConverter() should fail when the mapping file cannot be read")
		}
	})
}

func TestEmitJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	payload := map[string]string{"status": "ok"}
	if err := emitJSON(path, payload); err != nil {
		t.Fatalf("emitJSON() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read emitted file: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Emitted file is not valid JSON: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Errorf("Emitted JSON content = %v, want status=ok", decoded)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("Emitted JSON should end with a newline")
	}
}

func TestVersionFlagDetection(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		hasVersion bool
	}{
		{
			name:       "no version flag",
			args:       []string{"program"},
			hasVersion: false,
		},
		{
			name:       "--version flag",
			args:       []string{"program", "--version"},
			hasVersion: true,
		},
		{
			name:       "-v flag",
			args:       []string{"program", "-v"},
			hasVersion: true,
		},
		{
			name:       "similar but not version flag",
			args:       []string{"program", "-verbose", "-versions"},
			hasVersion: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, arg := range tt.args[1:] {
				if arg == "-version" || arg == "--version" || arg == "-v" {
					found = true
					break
				}
			}

			if found != tt.hasVersion {
				t.Errorf("Version flag detection for %v: got %v, want %v", tt.args, found, tt.hasVersion)
			}
		})
	}
}
