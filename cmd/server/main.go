package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/alliance-bot/app"
	authdomain "github.com/Black-And-White-Club/alliance-bot/app/modules/auth/domain"
	"github.com/Black-And-White-Club/alliance-bot/config"
	"github.com/Black-And-White-Club/alliance-bot/pkg/observability"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cliApp := &cli.App{
		Name:  "server",
		Usage: "alliance war-room API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			usersCommand(),
			tokenCommand(),
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// bootstrap loads configuration, telemetry and the wired application.
func bootstrap(c *cli.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	obs, err := observability.Init(c.Context, config.ToObsConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	application, err := app.NewApp(c.Context, cfg, obs)
	if err != nil {
		_ = obs.Shutdown(context.Background())
		return nil, err
	}
	return application, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Action: func(c *cli.Context) error {
			application, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer application.Close(context.Background())

			application.Observability.Logger.InfoContext(c.Context, "Starting alliance-bot")
			return application.Start(c.Context)
		},
	}
}

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "manage platform users",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "register a user and print a bearer token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "login", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.BoolFlag{Name: "admin", Usage: "grant the platform admin role"},
				},
				Action: func(c *cli.Context) error {
					application, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer application.Close(context.Background())

					role := authdomain.RoleUser
					if c.Bool("admin") {
						role = authdomain.RoleAdmin
					}
					user, err := application.UserModule.Service().RegisterUser(c.Context, c.String("login"), c.String("email"), role)
					if err != nil {
						return err
					}
					token, err := application.AuthModule.Service().IssueToken(c.Context, user.ID, 0)
					if err != nil {
						return err
					}
					fmt.Printf("user_id: %s\nrole: %s\ntoken: %s\nexpires_at: %s\n", user.ID, user.Role, token.Token, token.ExpiresAt.Format(time.RFC3339))
					return nil
				},
			},
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue a bearer token for an existing user",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "user-id", Required: true},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime; defaults to the configured jwt ttl"},
		},
		Action: func(c *cli.Context) error {
			userID, err := uuid.Parse(c.String("user-id"))
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}

			application, err := bootstrap(c)
			if err != nil {
				return err
			}
			defer application.Close(context.Background())

			token, err := application.AuthModule.Service().IssueToken(c.Context, userID, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token.Token)
			return nil
		},
	}
}
