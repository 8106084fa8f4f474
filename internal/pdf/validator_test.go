package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidatorValidateFile(t *testing.T) {
	validator := NewValidator(1024)

	notPDF := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(notPDF, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	empty := filepath.Join(t.TempDir(), "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(corrupt, []byte("not a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "empty path", path: "", wantErr: "path cannot be empty"},
		{name: "missing file", path: "/no/such/file.pdf", wantErr: "file does not exist"},
		{name: "directory", path: t.TempDir(), wantErr: "path is a directory"},
		{name: "wrong extension", path: notPDF, wantErr: "file is not a PDF"},
		{name: "empty file", path: empty, wantErr: "file is empty"},
		{name: "corrupt content", path: corrupt, wantErr: "invalid PDF file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateFile(tt.path)
			if err == nil {
				t.Fatalf("ValidateFile(%q) expected error", tt.path)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateFile(%q) error = %v, want containing %q", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidatorValidateBytes(t *testing.T) {
	validator := NewValidator(16)

	if err := validator.ValidateBytes(nil); err == nil {
		t.Error("ValidateBytes(nil) expected error")
	}

	big := make([]byte, 32)
	if err := validator.ValidateBytes(big); err == nil ||
		!strings.Contains(err.Error(), "file too large") {
		t.Errorf("ValidateBytes(oversized) error = %v, want file-too-large", err)
	}

	if err := validator.ValidateBytes([]byte("junk")); err == nil {
		t.Error("ValidateBytes(junk) expected error for invalid PDF")
	}
}
