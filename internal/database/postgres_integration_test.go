//go:build integration

package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"partnerhub/internal/config"
	"partnerhub/internal/models"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestOpenPostgres(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	req := tc.ContainerRequest{
		Image: "postgres:16-alpine",
		Env: map[string]string{
			"POSTGRES_USER":     "hub",
			"POSTGRES_PASSWORD": "hub",
			"POSTGRES_DB":       "hub",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(120 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBDriver:    "postgres",
		DatabaseURL: fmt.Sprintf("host=%s port=%s user=hub password=hub dbname=hub sslmode=disable", host, port.Port()),
		VerifyToken: "seed",
	}
	db, err := Open(cfg)
	require.NoError(t, err)

	SyncConfig(db, cfg)
	var n int64
	require.NoError(t, db.Model(&models.SystemSetting{}).Count(&n).Error)
	require.Equal(t, int64(1), n)
}
