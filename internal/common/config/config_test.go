package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnv(t *testing.T) {
	t.Setenv("X_A", "va")
	in := []byte("a: ${X_A:da}\nb: ${X_B:db}")
	out := resolveEnv(in)
	assert.Contains(t, string(out), "a: va")
	assert.Contains(t, string(out), "b: db")
}

func TestLoadConfig_AdminCLI(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	yaml := `
api:
  base_url: ${X_API_URL:http://backend:9000}
  timeout: 5s
auth:
  token_storage:
    type: memory
logger:
  level: debug
`
	file := filepath.Join(tmp, "adminctl.yaml")
	assert.NoError(t, os.WriteFile(file, []byte(yaml), 0o644))

	cfg, path, err := LoadConfig[AdminCLIConfig]("adminctl.yaml")
	assert.NoError(t, err)
	realFile, _ := filepath.EvalSymlinks(file)
	realPath, _ := filepath.EvalSymlinks(path)
	assert.Equal(t, realFile, realPath)
	assert.Equal(t, "http://backend:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "memory", cfg.Auth.TokenStorage.Type)
	// prefix was not set, defaults kick in
	assert.Equal(t, DefaultPrefix, cfg.API.Prefix)
}

func TestSetDefaults(t *testing.T) {
	var cfg AdminCLIConfig
	cfg.SetDefaults()

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultPrefix, cfg.API.Prefix)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Auth.TokenStorage.Type)
}

func TestSetDefaults_EnvBaseURL(t *testing.T) {
	t.Setenv("ADMINKIT_API_URL", "http://intranet:4000")
	var cfg AdminCLIConfig
	cfg.SetDefaults()
	assert.Equal(t, "http://intranet:4000", cfg.API.BaseURL)
}

func TestLoadConfig_MockBackend(t *testing.T) {
	tmp := t.TempDir()
	old, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(old) })
	_ = os.Chdir(tmp)

	yaml := `
port: 3001
jwt:
  secret_key: test-secret
  duration: 1h
`
	assert.NoError(t, os.WriteFile(filepath.Join(tmp, "mock-backend.yaml"), []byte(yaml), 0o644))

	cfg, _, err := LoadConfig[MockBackendConfig]("mock-backend.yaml")
	assert.NoError(t, err)
	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	assert.Equal(t, time.Hour, cfg.JWT.Duration)
}
