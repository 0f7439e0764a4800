package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rakhulsr/storefront-api/app/configs"
	"github.com/Rakhulsr/storefront-api/app/db/seeders"
	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/models/migrations"
	"github.com/Rakhulsr/storefront-api/app/repositories"
	"github.com/Rakhulsr/storefront-api/app/routes"
	"github.com/Rakhulsr/storefront-api/app/services"
	"github.com/Rakhulsr/storefront-api/app/utils/token"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

func RunCli() {
	cmd := &cli.Command{
		Name:   "storefront-api",
		Usage:  "E-commerce REST API",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					db, err := configs.OpenConnection(cfg.DB)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					slog.Info("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with fake categories, brands and products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 20},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					db, err := configs.OpenConnection(cfg.DB)
					if err != nil {
						return err
					}
					opts := seeders.DefaultOptions()
					opts.Products = int(c.Int("products"))
					return seeders.DBSeed(ctx, db, opts, uuid.NewString)
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintKeys(os.Stdout); err != nil {
						return err
					}
					slog.Info("Key generation complete, copy the secret to your .env file")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Admin"},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: createAdmin,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (configs.ENV, error) {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return configs.ENV{}, err
	}
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}

func serve(ctx context.Context, _ *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	decimal.MarshalJSONWithoutQuotes = true

	db, err := configs.OpenConnection(cfg.DB)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	slog.Info("Database connected", "host", cfg.DB.Host, "name", cfg.DB.Name)

	snapClient := configs.NewMidtransClient(cfg.Midtrans)
	router := routes.NewRouter(db, cfg, routes.Dependencies{
		Gateway: services.NewMidtransGateway(&snapClient, cfg.Midtrans.ServerKey, cfg.Midtrans.FinishURL),
		Mailer:  services.NewMailer(cfg.Email),
	})

	server := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func createAdmin(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := configs.OpenConnection(cfg.DB)
	if err != nil {
		return err
	}

	users := services.NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewAddressRepository(db),
		token.NewManager(cfg.JWT.Secret, cfg.JWT.ExpireTime),
	)
	name := c.String("name")
	admin := &models.User{
		Name:   name,
		Slug:   helpers.GenerateSlug(name),
		Email:  c.String("email"),
		Role:   models.RoleAdmin,
		Active: true,
	}
	if _, err := users.Create(ctx, admin, c.String("password")); err != nil {
		return err
	}
	slog.Info("Admin created", "id", admin.ID, "email", admin.Email)
	return nil
}
