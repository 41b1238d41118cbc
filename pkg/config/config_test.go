package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Threads != 4 {
		t.Errorf("default threads = %d, want 4", cfg.Output.Threads)
	}
	if cfg.Output.BatchSize != 100000 {
		t.Errorf("default batch size = %d, want 100000", cfg.Output.BatchSize)
	}
	if cfg.Tokenizer.Content != "whitespace" {
		t.Errorf("default tokenizer.content = %q, want whitespace", cfg.Tokenizer.Content)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
input:
  path: /tmp/corpus.txt
  format: html
output:
  prefix: /tmp/out/idx
  batchSize: 500
  threads: 8
tokenizer:
  content: html
  term: stem
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.Path != "/tmp/corpus.txt" {
		t.Errorf("input.path = %q, want /tmp/corpus.txt", cfg.Input.Path)
	}
	if cfg.Output.BatchSize != 500 {
		t.Errorf("output.batchSize = %d, want 500", cfg.Output.BatchSize)
	}
	if cfg.Output.Threads != 8 {
		t.Errorf("output.threads = %d, want 8", cfg.Output.Threads)
	}
	if cfg.Tokenizer.Term != "stem" {
		t.Errorf("tokenizer.term = %q, want stem", cfg.Tokenizer.Term)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FWDIDX_OUTPUT_THREADS", "16")
	t.Setenv("FWDIDX_TOKENIZER_TERM", "identity")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Threads != 16 {
		t.Errorf("output.threads = %d, want 16 (env override)", cfg.Output.Threads)
	}
	if cfg.Tokenizer.Term != "identity" {
		t.Errorf("tokenizer.term = %q, want identity (env override)", cfg.Tokenizer.Term)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"threads too low", func(c *Config) { c.Output.Threads = 1 }, true},
		{"batch size zero", func(c *Config) { c.Output.BatchSize = 0 }, true},
		{"empty prefix", func(c *Config) { c.Output.Prefix = "" }, true},
		{"unknown content strategy", func(c *Config) { c.Tokenizer.Content = "xml" }, true},
		{"unknown term strategy", func(c *Config) { c.Tokenizer.Term = "porter2" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
