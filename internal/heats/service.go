// Package heats orchestrates the pipeline: validate the PDF, extract its
// page text, parse the roster, render the requested output format.
package heats

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/lanezero/heatsheet/internal/pdf"
	"github.com/lanezero/heatsheet/internal/render"
	"github.com/lanezero/heatsheet/internal/roster"
)

// Format identifies an output rendering.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX, "":
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	}
	return "", fmt.Errorf("unknown output format %q (must be xlsx, csv or tsv)", s)
}

// ContentType returns the MIME type for HTTP responses.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatTSV:
		return "text/tab-separated-values"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Service wires the PDF boundary to the roster parser and the renderers.
type Service struct {
	maxHeatsPerEvent int
	reader           *pdf.Reader
	validator        *pdf.Validator
}

// NewService creates a conversion service. maxHeatsPerEvent caps heats
// retained per event (0 = unlimited).
func NewService(maxFileSize int64, maxHeatsPerEvent int) *Service {
	return &Service{
		maxHeatsPerEvent: maxHeatsPerEvent,
		reader:           pdf.NewReader(maxFileSize),
		validator:        pdf.NewValidator(maxFileSize),
	}
}

// ConvertFileRequest asks for a PDF on disk to be converted.
type ConvertFileRequest struct {
	Path   string
	Format Format
}

// ConvertResult carries the parsed document and the rendered artifacts.
// XLSX output holds both tables in one workbook; delimited formats render
// the heats table as Primary and the alternates table separately.
type ConvertResult struct {
	Document   *roster.Document
	Format     Format
	Primary    []byte
	Alternates []byte
}

// ConvertFile converts a program PDF on disk.
func (s *Service) ConvertFile(req ConvertFileRequest) (*ConvertResult, error) {
	if err := s.validator.ValidateFile(req.Path); err != nil {
		return nil, err
	}

	pages, err := s.reader.ExtractPages(req.Path)
	if err != nil {
		return nil, err
	}

	return s.convertPages(pages, req.Format)
}

// ConvertUpload converts an in-memory PDF upload.
func (s *Service) ConvertUpload(data []byte, format Format) (*ConvertResult, error) {
	if err := s.validator.ValidateBytes(data); err != nil {
		return nil, err
	}

	pages, err := s.reader.ExtractPagesFromReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	return s.convertPages(pages, format)
}

// ParsePages runs only the roster parse, for callers that render elsewhere.
func (s *Service) ParsePages(pages []string) (*roster.Document, error) {
	return roster.ParsePages(pages, s.maxHeatsPerEvent)
}

func (s *Service) convertPages(pages []string, format Format) (*ConvertResult, error) {
	doc, err := roster.ParsePages(pages, s.maxHeatsPerEvent)
	if err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}

	result := &ConvertResult{Document: doc, Format: format}

	switch format {
	case FormatCSV, FormatTSV:
		delim := ','
		if format == FormatTSV {
			delim = '\t'
		}
		heatsOut, err := render.Delimited(render.HeatsHeaders, render.EventRows(doc.Events), delim)
		if err != nil {
			return nil, fmt.Errorf("render heats table: %w", err)
		}
		altOut, err := render.Delimited(render.AlternatesHeaders, render.AlternateRows(doc.Alternates), delim)
		if err != nil {
			return nil, fmt.Errorf("render alternates table: %w", err)
		}
		result.Primary = []byte(heatsOut)
		result.Alternates = []byte(altOut)

	default:
		out, err := render.WorkbookBytes(doc)
		if err != nil {
			return nil, fmt.Errorf("render workbook: %w", err)
		}
		result.Primary = out
	}

	return result, nil
}
