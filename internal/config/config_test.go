package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()
	Global, Slack, Archive, Service, Lambda = global{}, slack{}, archive{}, service{}, lambda{}
	t.Cleanup(func() {
		Global, Slack, Archive, Service, Lambda = global{}, slack{}, archive{}, service{}, lambda{}
	})
}

func TestSetDefaults(t *testing.T) {
	reset(t)

	require.NoError(t, SetDefaults())

	assert.Equal(t, ModeLambdaHTTP, Global.Mode)
	assert.Equal(t, "env", Slack.WebhookSource)
	assert.Equal(t, 10*time.Second, Slack.Timeout)
	assert.False(t, Archive.S3.Enabled)
	assert.Equal(t, "/", Service.Path)
	assert.Equal(t, "8080", Service.Port)
	assert.Equal(t, 5*time.Second, Service.Timeout)
	assert.Equal(t, "/metrics", Service.MetricsPath)
	assert.Equal(t, "api-gateway-v1", Lambda.PayloadType)
}

func TestLoadFromFile(t *testing.T) {
	reset(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
global:
  mode: service
  logging:
    verbosity: 2
slack:
  webhookSource: ssm
  ssmKey: /bridge/slack
  timeout: 3s
archive:
  s3:
    enabled: true
    bucketName: bridge-archive
service:
  port: "9090"
`), 0o600))

	require.NoError(t, LoadFromFile(path))
	require.NoError(t, SetDefaults())

	assert.Equal(t, ModeService, Global.Mode)
	assert.Equal(t, 2, Global.Logging.Verbosity)
	assert.Equal(t, "ssm", Slack.WebhookSource)
	assert.Equal(t, "/bridge/slack", Slack.SSMKey)
	assert.Equal(t, 3*time.Second, Slack.Timeout)
	assert.True(t, Archive.S3.Enabled)
	assert.Equal(t, "bridge-archive", Archive.S3.BucketName)
	assert.Equal(t, "9090", Service.Port)
	assert.Equal(t, "/", Service.Path)
	assert.Equal(t, "api-gateway-v1", Lambda.PayloadType)
}

func TestLoadFromFile_Errors(t *testing.T) {
	reset(t)
	dir := t.TempDir()

	assert.NoError(t, LoadFromFile(""))
	assert.NoError(t, LoadFromFile(filepath.Join(dir, "missing.yaml")))
	assert.ErrorContains(t, LoadFromFile(dir), "is a directory")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("global: [unterminated"), 0o600))
	assert.ErrorContains(t, LoadFromFile(invalid), "failed to unmarshal")
}
