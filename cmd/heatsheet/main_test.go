package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/lanezero/heatsheet/internal/config"
	"github.com/lanezero/heatsheet/internal/heats"
)

const testVersion = "1.2.3"

func capturePrintVersion(t *testing.T) string {
	t.Helper()

	// Save original stdout
	originalStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	// Redirect stdout to the pipe
	os.Stdout = w
	defer func() { os.Stdout = originalStdout }()

	// Call printVersion in a goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	// Read the output
	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	return buf.String()
}

func TestPrintVersion(t *testing.T) {
	// Set version variables for testing
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = testVersion
	buildTime = "2025-12-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	// Verify output contains expected information
	expectedStrings := []string{
		"heatsheet",
		"Version: " + testVersion,
		"Build Time: 2025-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit

	version = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	defer func() {
		version = oldVersion
		buildTime = oldBuildTime
		gitCommit = oldGitCommit
	}()

	output := capturePrintVersion(t)

	expectedStrings := []string{
		"heatsheet",
		"Version: dev",
		"Build Time: unknown",
		"Git Commit: unknown",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging_ServerMode(t *testing.T) {
	// Save original log settings
	originalOutput := log.Writer()
	originalFlags := log.Flags()

	defer func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
	}()

	cfg := &config.Config{
		Mode:     "server",
		LogLevel: "info",
	}

	logger := setupLogging(cfg)
	if logger == nil {
		t.Fatal("setupLogging() returned nil logger")
	}

	// In server mode, flags should include LstdFlags and Lshortfile
	currentFlags := log.Flags()
	expectedFlags := log.LstdFlags | log.Lshortfile

	if currentFlags != expectedFlags {
		t.Errorf("setupLogging() for server mode: flags = %v, want %v", currentFlags, expectedFlags)
	}
}

func TestAlternatesPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		format heats.Format
		want   string
	}{
		{
			name:   "csv output",
			path:   "/tmp/program.csv",
			format: heats.FormatCSV,
			want:   "/tmp/program_alternates.csv",
		},
		{
			name:   "tsv output",
			path:   "/tmp/program.tsv",
			format: heats.FormatTSV,
			want:   "/tmp/program_alternates.tsv",
		},
		{
			name:   "extension mismatch appends",
			path:   "/tmp/program.out",
			format: heats.FormatCSV,
			want:   "/tmp/program.out_alternates.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alternatesPath(tt.path, tt.format); got != tt.want {
				t.Errorf("alternatesPath(%q, %q) = %q, want %q", tt.path, tt.format, got, tt.want)
			}
		})
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
			name:       "-version flag",
			args:       []string{"program", "-version"},
			hasVersion: true,
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
			name:       "version flag with other args",
			args:       []string{"program", "--mode=server", "-version", "--port=8080"},
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
			for _, arg := range tt.args[1:] { // Skip program name
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
