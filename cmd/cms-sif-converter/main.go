package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/fieldworks/cms-sif-converter/internal/config"
	"github.com/fieldworks/cms-sif-converter/internal/convert"
	"github.com/fieldworks/cms-sif-converter/internal/mapping"
	"github.com/fieldworks/cms-sif-converter/internal/mcp"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering with MCP protocol
		log.SetOutput(os.Stderr)
		// Reduce log verbosity in stdio mode unless debug is enabled
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// newConverter builds a Converter from the configuration, loading a
// custom mapping file when one was given.
func newConverter(cfg *config.Config) (*convert.Converter, error) {
	opts := convert.Options{
		Flatten: cfg.Flatten,
		Debug:   cfg.IsDebug(),
	}

	if cfg.MappingPath != "" {
		m, err := mapping.Load(cfg.MappingPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load custom mapping: %w", err)
		}
		opts.Mapping = m
	}

	return convert.New(opts), nil
}

// runStdioMode serves MCP over stdio; the parent process controls our
// lifecycle.
func runStdioMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		// Only log to stderr in debug mode to avoid protocol interference
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

// runConvert performs a one-shot conversion and writes the filled SIF and
// its mapping report.
func runConvert(ctx context.Context, cfg *config.Config, converter *convert.Converter) error {
	source, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to read CMS report: %w", err)
	}
	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read SIF template: %w", err)
	}

	result, err := converter.Convert(ctx, source, template)
	if err != nil {
		return err
	}

	out := cfg.OutputPath
	if out == "" {
		out = "filled_sif.pdf"
	}
	if err := os.WriteFile(out, result.Document, 0o600); err != nil {
		return fmt.Errorf("failed to write filled SIF: %w", err)
	}
	log.Printf("Wrote filled SIF to %s (%d bytes)", out, len(result.Document))

	for _, w := range result.Warnings {
		log.Printf("Warning: %s", w)
	}

	return emitJSON(cfg.ReportPath, result.Report)
}

// runPreview extracts CMS data and prints the preview result as JSON.
func runPreview(ctx context.Context, cfg *config.Config, converter *convert.Converter) error {
	source, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to read CMS report: %w", err)
	}

	return emitJSON(cfg.ReportPath, converter.Preview(ctx, source))
}

// runValidate checks a SIF template and prints the validation result as JSON.
func runValidate(cfg *config.Config, converter *convert.Converter) error {
	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read SIF template: %w", err)
	}

	return emitJSON(cfg.ReportPath, converter.ValidateTemplate(template))
}

// emitJSON writes v as pretty-printed JSON to path, or stdout when path
// is empty.
func emitJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && !cfg.IsStdioMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	converter, err := newConverter(cfg)
	if err != nil {
		log.Fatalf("Failed to create converter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cfg.Mode {
	case config.ModeStdio:
		server, err := mcp.NewServer(cfg, converter)
		if err != nil {
			log.Fatalf("Failed to create MCP server: %v", err)
		}
		runStdioMode(ctx, server)
	case config.ModeConvert:
		if err := runConvert(ctx, cfg, converter); err != nil {
			log.Fatalf("Conversion failed: %v", err)
		}
	case config.ModePreview:
		if err := runPreview(ctx, cfg, converter); err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
	case config.ModeValidate:
		if err := runValidate(cfg, converter); err != nil {
			log.Fatalf("Validation failed: %v", err)
		}
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("CMS to SIF Converter\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
