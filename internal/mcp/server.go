package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fieldworks/cms-sif-converter/internal/config"
	"github.com/fieldworks/cms-sif-converter/internal/convert"
	"github.com/fieldworks/cms-sif-converter/internal/pdf"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	converter *convert.Converter
	inspector *pdf.FormInspector
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, converter *convert.Converter) (*Server, error) {
	if converter == nil {
		return nil, fmt.Errorf("converter cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		converter: converter,
		inspector: pdf.NewFormInspector(cfg.IsDebug()),
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	cmsConvertTool := mcp.NewTool(
		"cms_convert",
		mcp.WithDescription("Convert a CMS report PDF into a filled SIF template PDF"),
		mcp.WithString("cms_path",
			mcp.Required(),
			mcp.Description("Full path to the CMS report PDF"),
		),
		mcp.WithString("sif_path",
			mcp.Required(),
			mcp.Description("Full path to the blank SIF template PDF"),
		),
		mcp.WithString("output_path",
			mcp.Description("Destination path for the filled SIF (defaults next to the template)"),
		),
	)
	s.mcpServer.AddTool(cmsConvertTool, s.handleCMSConvert)

	cmsPreviewTool := mcp.NewTool(
		"cms_preview",
		mcp.WithDescription("Extract and preview CMS report data without producing a SIF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the CMS report PDF"),
		),
	)
	s.mcpServer.AddTool(cmsPreviewTool, s.handleCMSPreview)

	sifValidateTool := mcp.NewTool(
		"sif_validate",
		mcp.WithDescription("Validate that a SIF template PDF has fillable form fields"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the SIF template PDF"),
		),
	)
	s.mcpServer.AddTool(sifValidateTool, s.handleSIFValidate)

	sifFieldsTool := mcp.NewTool(
		"sif_fields",
		mcp.WithDescription("List the form fields of a SIF template PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the SIF template PDF"),
		),
	)
	s.mcpServer.AddTool(sifFieldsTool, s.handleSIFFields)
}

// Handler functions
func (s *Server) handleCMSConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmsPath, err := request.RequireString("cms_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sifPath, err := request.RequireString("sif_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outputPath := ""
	if out, ok := request.GetArguments()["output_path"].(string); ok {
		outputPath = out
	}
	if outputPath == "" {
		dir := filepath.Dir(sifPath)
		base := strings.TrimSuffix(filepath.Base(sifPath), filepath.Ext(sifPath))
		outputPath = filepath.Join(dir, base+"_filled.pdf")
	}

	source, err := s.readPDF(cmsPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	template, err := s.readPDF(sifPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.converter.Convert(ctx, source, template)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := os.WriteFile(outputPath, result.Document, 0o600); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write filled SIF: %v", err)), nil
	}

	return mcp.NewToolResultText(s.formatConvertResult(outputPath, result)), nil
}

func (s *Server) handleCMSPreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	source, err := s.readPDF(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	preview := s.converter.Preview(ctx, source)
	if !preview.Success {
		return mcp.NewToolResultError(preview.Error), nil
	}

	return mcp.NewToolResultText(s.formatPreviewResult(path, preview)), nil
}

func (s *Server) handleSIFValidate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	template, err := s.readPDF(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	validation := s.converter.ValidateTemplate(template)
	if !validation.Success {
		return mcp.NewToolResultError(validation.Error), nil
	}

	return mcp.NewToolResultText(s.formatValidationResult(path, validation)), nil
}

func (s *Server) handleSIFFields(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	template, err := s.readPDF(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := s.inspector.Fields(template)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	names, err := s.inspector.FieldNames(template)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("SIF template fields for: %s\n", path)
	text += fmt.Sprintf("Total fields: %d\n\nFields:\n", len(names))
	for i, name := range names {
		field := fields[name]
		text += fmt.Sprintf("%d. %s (type: %s)", i+1, name, field.Type)
		if field.Value != "" {
			text += fmt.Sprintf(", value: %q", field.Value)
		}
		text += "\n"
	}

	return mcp.NewToolResultText(text), nil
}

// readPDF loads a PDF file, enforcing the configured size limit.
func (s *Server) readPDF(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() > s.config.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			info.Size(), s.config.MaxFileSize)
	}

	return os.ReadFile(path)
}

// Formatting methods
func (s *Server) formatConvertResult(outputPath string, result *convert.Result) string {
	text := fmt.Sprintf("Successfully converted CMS report to SIF: %s\n", outputPath)
	text += fmt.Sprintf("Output size: %d bytes\n", len(result.Document))

	report := result.Report
	if report.Error != "" {
		text += fmt.Sprintf("\nMapping report unavailable: %s\n", report.Error)
	} else {
		text += "\nMapping Report:\n"
		text += fmt.Sprintf("  CMS fields extracted: %d\n", report.CMSExtraction.TotalFields)
		text += fmt.Sprintf("  SIF fields available: %d\n", report.SIFForm.TotalFields)
		text += fmt.Sprintf("  Fields successfully mapped: %d\n", report.Mapping.SuccessfullyMapped)
		text += fmt.Sprintf("  CMS coverage: %s\n", report.Coverage.CMSCoverage)
		text += fmt.Sprintf("  SIF coverage: %s\n", report.Coverage.SIFCoverage)
		if len(report.Gaps.UnfilledSIFFields) > 0 {
			text += fmt.Sprintf("  Unfilled SIF fields: %s\n", strings.Join(report.Gaps.UnfilledSIFFields, ", "))
		}
	}

	if len(result.Warnings) > 0 {
		text += "\nWarnings:\n"
		for _, w := range result.Warnings {
			text += fmt.Sprintf("  - %s\n", w)
		}
	}

	return text
}

func (s *Server) formatPreviewResult(path string, preview *convert.PreviewResult) string {
	text := fmt.Sprintf("CMS report preview for: %s\n", path)
	text += fmt.Sprintf("Extracted %d of %d attributes\n",
		preview.Summary.ExtractedCount, preview.Summary.TotalAttributes)

	if data, err := json.MarshalIndent(preview.Data, "", "  "); err == nil {
		text += "\nExtracted data:\n"
		text += string(data) + "\n"
	}

	if len(preview.Summary.Missing) > 0 {
		text += fmt.Sprintf("\nMissing attributes: %s\n", strings.Join(preview.Summary.Missing, ", "))
	}
	if len(preview.Warnings) > 0 {
		text += "\nWarnings:\n"
		for _, w := range preview.Warnings {
			text += fmt.Sprintf("  - %s\n", w)
		}
	}

	return text
}

func (s *Server) formatValidationResult(path string, validation *convert.ValidationResult) string {
	var text string
	if validation.IsValid {
		text = fmt.Sprintf("SIF template %s is valid: %d fillable field(s)\n", path, validation.FieldCount)
	} else {
		text = fmt.Sprintf("SIF template validation failed for %s: %s\n", path, validation.Message)
	}

	if len(validation.Fields) > 0 {
		text += "\nFields:\n"
		for i, name := range validation.Fields {
			text += fmt.Sprintf("%d. %s\n", i+1, name)
		}
	}

	if meta := validation.Metadata; meta != nil {
		text += fmt.Sprintf("\nPages: %d\n", meta.PageCount)
		if meta.Title != "" {
			text += fmt.Sprintf("Title: %s\n", meta.Title)
		}
		if meta.Author != "" {
			text += fmt.Sprintf("Author: %s\n", meta.Author)
		}
		if meta.Encrypted {
			text += "Encrypted: yes\n"
		}
	}

	return text
}

// Run starts the MCP server over stdio. The parent process controls the
// server's lifecycle.
func (s *Server) Run(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting CMS-SIF MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
