package database

import (
	"testing"

	appconfig "fieldservice/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	cfg := appconfig.Database{Host: "db", Port: 5433, User: "svc", Password: "pw", Name: "fieldservice"}
	assert.Equal(t, "host=db user=svc password=pw dbname=fieldservice port=5433 sslmode=disable", PostgresDSN(cfg))

	cfg.SSLEnabled = true
	assert.Contains(t, PostgresDSN(cfg), "sslmode=require")
}
