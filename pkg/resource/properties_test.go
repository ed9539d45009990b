package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/configs"
)

func TestLoad_ResolvesEnvPlaceholders(t *testing.T) {
	t.Cleanup(func() { _ = Load(configs.Application) })
	t.Setenv("TODO_TEST_PORT", "9090")

	err := Load([]byte(`
app:
  server:
    port: ${TODO_TEST_PORT:8080}
    path: ${TODO_TEST_MISSING:/api}
    empty: ${TODO_TEST_MISSING_TOO:}
    literal: plain
  ttl: 2h
  limit: 5
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, GetInt("app.server.port"))
	assert.Equal(t, "/api", GetString("app.server.path"))
	assert.Equal(t, "", GetString("app.server.empty"))
	assert.Equal(t, "plain", GetString("app.server.literal"))
	assert.Equal(t, 2*time.Hour, GetDuration("app.ttl"))
	assert.Equal(t, 5, GetInt("app.limit"))
}

func TestBundledProperties(t *testing.T) {
	require.NoError(t, Load(configs.Application))

	assert.Equal(t, "/api/v1", GetString("app.server.context-path"))
	assert.Equal(t, int64(10485760), GetInt64("app.attachment.max-size"))
	assert.Equal(t, "token", GetString("app.auth.cookie-name"))
	assert.Equal(t, 168*time.Hour, GetDuration("app.auth.token-ttl"))
}
