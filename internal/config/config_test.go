package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
		Database: DatabaseConfig{
			Host:   "localhost",
			Port:   5432,
			User:   "duet",
			DBName: "duet_bot",
		},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Telegram.Token = "" }},
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db user", func(c *Config) { c.Database.User = "" }},
		{"missing db name", func(c *Config) { c.Database.DBName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "duet",
		Password: "secret",
		DBName:   "duet_bot",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=duet password=secret dbname=duet_bot sslmode=disable",
		db.GetDSN(),
	)
}

func TestRedisEnabled(t *testing.T) {
	assert.False(t, (&RedisConfig{}).Enabled())

	redis := &RedisConfig{Host: "localhost", Port: 6379}
	assert.True(t, redis.Enabled())
	assert.Equal(t, "localhost:6379", redis.GetAddr())
}
