package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("LEARNIT_AUTH_JWTSECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/learnit.db", cfg.Database.Path)
	assert.Equal(t, "learnit", cfg.Database.MongoDatabase)
	assert.Equal(t, 24*60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Error(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("LEARNIT_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("LEARNIT_DATABASE_DRIVER", "mongo")
	t.Setenv("LEARNIT_DATABASE_MONGOURI", "mongodb://db:27017")
	t.Setenv("LEARNIT_AUTH_JWTSECRET", "s3cret")
	t.Setenv("LEARNIT_AUTH_TOKENTTLMINUTES", "0")
	t.Setenv("LEARNIT_CORS_ALLOWEDORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.MongoURI)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Duration(0), cfg.TokenTTL())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_LegacySecretName(t *testing.T) {
	t.Setenv("LEARNIT_AUTH_JWTSECRET", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Auth.JWTSecret = "k"
		c.Database.Driver = DriverSQLite
		c.Database.Path = "x.db"
		return c
	}

	require.NoError(t, valid().Validate())

	c := valid()
	c.Auth.JWTSecret = "  "
	assert.Error(t, c.Validate())

	c = valid()
	c.Auth.TokenTTLMinutes = -1
	assert.Error(t, c.Validate())

	c = valid()
	c.Database.Driver = "postgres"
	assert.Error(t, c.Validate())

	c = valid()
	c.Database.Path = ""
	assert.Error(t, c.Validate())

	c = valid()
	c.Database.Driver = DriverMongo
	assert.Error(t, c.Validate())
	c.Database.MongoURI = "mongodb://x"
	assert.NoError(t, c.Validate())

	c = valid()
	c.Auth.TokenTTLMinutes = 90
	assert.Equal(t, 90*time.Minute, c.TokenTTL())
}
