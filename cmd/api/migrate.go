package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/atelier-api/internal/infrastructure/postgres"
	"github.com/jhoicas/atelier-api/pkg/config"
	"github.com/jhoicas/atelier-api/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de base de datos",
		Long:  `Aplica, revierte o muestra el estado de las migraciones SQL embebidas en el binario.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplicar migraciones pendientes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, log *logger.Logger) error {
					if err := m.Up(ctx); err != nil {
						return err
					}
					v, err := m.Version(ctx)
					if err != nil {
						return err
					}
					log.Info().Int64("version", v).Msg("migraciones aplicadas")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revertir la última migración",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, log *logger.Logger) error {
					if err := m.Down(ctx); err != nil {
						return err
					}
					log.Info().Msg("migración revertida")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Mostrar el estado de las migraciones",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator, _ *logger.Logger) error {
					return m.Status(ctx)
				})
			},
		},
	)
	return cmd
}

// withMigrator carga configuración, abre el pool y ejecuta fn.
func withMigrator(ctx context.Context, fn func(context.Context, *postgres.Migrator, *logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := fn(ctx, postgres.NewMigrator(pool), log); err != nil {
		log.Error().Err(err).Msg("migración fallida")
		return err
	}
	return nil
}
