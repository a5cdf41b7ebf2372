package testutils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"

	"github.com/Black-And-White-Club/alliance-bot/app"
	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/Black-And-White-Club/alliance-bot/integration_tests/containers"
	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
)

// TestEnvironment holds the containers and the composed application shared by a
// test package.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer testcontainers.Container
	DB            *bun.DB
	EventBus      *eventbus.Bus
	Config        *config.Config
	App           *app.App
}

// NewTestEnvironment starts Postgres and NATS, migrates the schema and composes
// the application against them.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{Ctx: ctx, CancelContext: cancel}

	if err := env.setup(ctx); err != nil {
		env.Cleanup()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setup(ctx context.Context) error {
	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr, MaxOpenConns: 10},
		NATS:     config.NATSConfig{URL: natsURL},
		JWT:      config.JWTConfig{Secret: "integration-secret", Issuer: config.ServiceName, DefaultTTL: time.Hour},
		HTTP:     config.HTTPConfig{RateLimitRPS: 1000, RateLimitBurst: 1000},
	}

	db, err := database.Open(ctx, pgConnStr, database.Options{MaxOpenConns: 10})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	env.DB = db

	if err := RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName: config.ServiceName,
		Environment: "test",
		LogLevel:    "error",
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}

	bus, err := eventbus.NewNATS(natsURL, obs.Logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	env.App = app.Compose(ctx, env.Config, obs, db, bus)
	return nil
}

// Reset empties every application table.
func (env *TestEnvironment) Reset() error {
	return TruncateAll(env.Ctx, env.DB)
}

// Cleanup tears down everything NewTestEnvironment created.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}
	if env.DB != nil {
		env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}
