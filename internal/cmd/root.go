package cmd

import (
	"context"
	"fmt"
	"os"

	"pet-adoption-platform/internal/adapters/storage"
	"pet-adoption-platform/internal/config"
	"pet-adoption-platform/internal/platform/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "petadopt",
	Short: "Pet adoption platform API",
	Long: `API de la plataforma de adopción: mascotas y solicitudes de adopción,
tienda con carrito, citas veterinarias y checkout simulado.

La configuración se lee de variables PETADOPT_* (y de .env si existe).`,
	SilenceUsage: true,
}

var storageDriver string

func init() {
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", "", "override PETADOPT_STORAGE_DRIVER (memory|redis|postgres|sqlite)")
}

// Execute corre el comando raíz.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap carga config, arma el logger y abre el storage elegido.
func bootstrap(ctx context.Context) (*config.Config, logger.Logger, *storage.Repositories, error) {
	if storageDriver != "" {
		if err := os.Setenv(config.EnvPrefix+"_STORAGE_DRIVER", storageDriver); err != nil {
			return nil, nil, nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})

	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, repos, nil
}
