package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionInfo_DSN(t *testing.T) {
	info := ConnectionInfo{
		Host:     "db",
		Port:     5433,
		Username: "library",
		DBName:   "catalog",
		SSLMode:  "disable",
		Password: "secret",
	}

	assert.Equal(t, "host=db port=5433 user=library dbname=catalog sslmode=disable password=secret", info.DSN())
}
