package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
server:
  port: 8080
site:
  url: https://www.example.com/
  startDate: "2025-08-01"
  endDate: "2025-09-01"
openai:
  apiKey: sk-test
  model: gpt-4o-mini
database:
  driver: mysql
  host: localhost
  port: 3306
  user: seo
  password: secret
  name: audits
minio:
  endpoint: minio.local:9000
  accessKey: ak
  secretKey: sk
  bucketName: artifacts
  region: us-east-1
auth:
  apiKeys:
    acme: key-acme
rateLimit:
  capacity: 10
  refillRate: 2
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d", cfg.Server.Port)
	}
	if cfg.Site.URL != "https://www.example.com/" {
		t.Fatalf("site url = %s", cfg.Site.URL)
	}
	if cfg.Site.RowLimit != 10 {
		t.Fatalf("row limit default = %d, want 10", cfg.Site.RowLimit)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("model = %s", cfg.OpenAI.Model)
	}
	if cfg.Auth.APIKeys["acme"] != "key-acme" {
		t.Fatalf("api keys = %v", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.Capacity != 10 || cfg.RateLimit.RefillRate != 2 {
		t.Fatalf("rate limit = %+v", cfg.RateLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDSNHelpers(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantMySQL := "seo:secret@tcp(localhost:3306)/audits?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != wantMySQL {
		t.Fatalf("MySQLDSN = %s", got)
	}

	wantPG := "host=localhost port=3306 user=seo password=secret dbname=audits sslmode=disable"
	if got := cfg.PostgresDSN(); got != wantPG {
		t.Fatalf("PostgresDSN = %s", got)
	}
}
