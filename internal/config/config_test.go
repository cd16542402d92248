package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example, ,https://b.example ")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, int64(100), cfg.CoinValue)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_EmptyOriginList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Nil(t, Load().CORSOrigins)
}
