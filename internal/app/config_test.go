package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	// 仅写入部分字段，其余应由默认值填充
	content := `
server:
  http-port: :8080
database:
  conn-max-lifetime: 1h
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, realpath, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if realpath == "" {
		t.Error("Expected non-empty config realpath")
	}

	if cfg.Server.HttpPort != ":8080" {
		t.Errorf("Expected HttpPort :8080, got %s", cfg.Server.HttpPort)
	}
	if cfg.Server.RunMode != "release" {
		t.Errorf("Expected default RunMode release, got %s", cfg.Server.RunMode)
	}
	if cfg.Server.PrivateHttpListen != ":9001" {
		t.Errorf("Expected default PrivateHttpListen :9001, got %s", cfg.Server.PrivateHttpListen)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Expected default database type sqlite, got %s", cfg.Database.Type)
	}
	if !cfg.Tracer.Enabled {
		t.Error("Expected tracer enabled by default")
	}
	if cfg.Tasks.RoomStatsSpec != "@every 1m" {
		t.Errorf("Expected default room stats spec @every 1m, got %s", cfg.Tasks.RoomStatsSpec)
	}

	if got := cfg.GetConnMaxLifetime(); got != time.Hour {
		t.Errorf("Expected ConnMaxLifetime 1h, got %v", got)
	}
	if got := cfg.GetConnMaxIdleTime(); got != 10*time.Minute {
		t.Errorf("Expected default ConnMaxIdleTime 10m, got %v", got)
	}
	if got := cfg.GetContextTimeout(); got != 60*time.Second {
		t.Errorf("Expected default context timeout 60s, got %v", got)
	}
}

func TestConfigSave(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(tmpFile, []byte("server:\n  http-port: :8080\n"), 0644); err != nil {
		t.Fatalf("Failed to write initial config file: %v", err)
	}

	cfg, _, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cfg.Server.CorsAllowOrigin = "https://pad.example.com"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v, file: %s", err, cfg.File)
	}

	updatedData, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read updated config file: %v", err)
	}

	var updated AppConfig
	if err := yaml.Unmarshal(updatedData, &updated); err != nil {
		t.Fatalf("Failed to unmarshal updated config: %v", err)
	}
	if updated.Server.CorsAllowOrigin != "https://pad.example.com" {
		t.Errorf("Expected CorsAllowOrigin https://pad.example.com, got %s", updated.Server.CorsAllowOrigin)
	}
}
