package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("MONGO_DATABASE", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "sedp", cfg.MongoDatabase)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://sedp.example, https://admin.sedp.example ,")
	t.Setenv("PRIMARY_ADMIN_EMAIL", "Admin@SEDP.example")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"https://sedp.example", "https://admin.sedp.example"}, cfg.CORSOrigins)
	assert.Equal(t, "admin@sedp.example", cfg.PrimaryAdminEmail)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
