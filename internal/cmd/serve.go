package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-platform/internal/router"
	"pet-adoption-platform/internal/seed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Levanta la API HTTP. Con PETADOPT_SEED_ON_START=true siembra
los datos de ejemplo que falten antes de aceptar requests.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, repos, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, repos.Close())
	}()

	if cfg.Seed.OnStart {
		if _, err := seed.Apply(ctx, repos.SeedTarget(), time.Now(), cfg.Password.BcryptCost, log); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr: ":" + cfg.App.Port,
		Handler: router.NewRouter(router.Options{
			Logger:       log,
			Repos:        repos,
			Registry:     reg,
			BcryptCost:   cfg.Password.BcryptCost,
			GatewayDelay: cfg.Checkout.GatewayDelay,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Env, "storage": repos.Driver})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
