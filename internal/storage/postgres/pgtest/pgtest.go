// Package pgtest starts disposable PostgreSQL containers for integration
// tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the PostgreSQL image used for test databases.
const Image = "postgres:17-alpine"

// Database is a running test database.
type Database struct {
	URL       string
	container testcontainers.Container
}

// Start runs a PostgreSQL container and waits until it accepts connections.
func Start(ctx context.Context) (*Database, error) {
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "orders",
				"POSTGRES_PASSWORD": "orders",
				"POSTGRES_DB":       "orders",
			},
			// The server restarts once after init; wait for the second start.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "start postgres container")
	}
	db := &Database{container: c}

	host, err := c.Host(ctx)
	if err != nil {
		db.Terminate()
		return nil, errors.Wrap(err, "container host")
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		db.Terminate()
		return nil, errors.Wrap(err, "container port")
	}

	db.URL = fmt.Sprintf("postgres://orders:orders@%s:%s/orders?sslmode=disable", host, port.Port())
	return db, nil
}

// Terminate removes the container.
func (db *Database) Terminate() {
	_ = testcontainers.TerminateContainer(db.container)
}
