package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContentDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "./airlift.db" {
		t.Fatalf("unexpected default database path: %q", cfg.Database.Path)
	}
	if cfg.Import.MaxUploadMB != 32 {
		t.Fatalf("unexpected default upload limit: %d", cfg.Import.MaxUploadMB)
	}
}

func TestValidateYAMLContentOverrides(t *testing.T) {
	t.Parallel()

	content := `
server:
  port: 9090
database:
  path: /var/lib/airlift/airlift.db
import:
  max_upload_mb: 8
`
	cfg, err := ValidateYAMLContent([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Import.MaxUploadBytes() != 8<<20 {
		t.Fatalf("unexpected upload byte limit: %d", cfg.Import.MaxUploadBytes())
	}
}

func TestValidateYAMLContentRejectsInvalidPort(t *testing.T) {
	t.Parallel()

	_, err := ValidateYAMLContent([]byte("server:\n  port: 70000\n"))
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestExampleYAMLIsValid(t *testing.T) {
	t.Parallel()

	if _, err := ValidateYAMLContent([]byte(ExampleYAML())); err != nil {
		t.Fatalf("example template must validate: %v", err)
	}
}
