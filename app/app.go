package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/alliance-bot/app/modules/alliance"
	"github.com/Black-And-White-Club/alliance-bot/app/modules/auth"
	"github.com/Black-And-White-Club/alliance-bot/app/modules/champion"
	"github.com/Black-And-White-Club/alliance-bot/app/modules/defense"
	defensedb "github.com/Black-And-White-Club/alliance-bot/app/modules/defense/infrastructure/repositories"
	"github.com/Black-And-White-Club/alliance-bot/app/modules/user"
	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/Black-And-White-Club/alliance-bot/pkg/database"
	"github.com/Black-And-White-Club/alliance-bot/pkg/eventbus"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/uptrace/bun"
)

// App holds the process-wide dependencies and the wired modules.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	EventBus      *eventbus.Bus

	UserModule     *user.Module
	AuthModule     *auth.Module
	ChampionModule *champion.Module
	AllianceModule *alliance.Module
	DefenseModule  *defense.Module
}

// NewApp opens the database and event bus and wires every module.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Observability) (*App, error) {
	db, err := database.Open(ctx, cfg.Postgres.DSN, database.Options{MaxOpenConns: cfg.Postgres.MaxOpenConns})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus, err := eventbus.New(cfg.NATS.URL, obs.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	return Compose(ctx, cfg, obs, db, bus), nil
}

// Compose wires the modules over an open database and bus.
func Compose(ctx context.Context, cfg *config.Config, obs *observability.Observability, db *bun.DB, bus *eventbus.Bus) *App {
	a := &App{Config: cfg, Observability: obs, DB: db, EventBus: bus}

	a.UserModule = user.NewModule(ctx, obs, bus, db)
	a.AuthModule = auth.NewModule(ctx, cfg, obs, a.UserModule.Repository())
	a.ChampionModule = champion.NewModule(ctx, obs, bus, a.UserModule.Repository(), db)

	// The alliance module releases placements through the defense repository,
	// the defense module resolves roles through the alliance authority.
	placements := defensedb.NewRepository(db)
	a.AllianceModule = alliance.NewModule(ctx, obs, bus, a.UserModule.Repository(), placements, db)
	a.DefenseModule = defense.NewModule(ctx, obs, bus, placements,
		a.AllianceModule.Authority(),
		a.ChampionModule.Repository(),
		a.UserModule.Repository(),
		db,
	)
	return a
}

// Close releases the bus, the database and the telemetry exporters.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Observability != nil {
		errs = append(errs, a.Observability.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
