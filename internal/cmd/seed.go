package cmd

import (
	"encoding/json"
	"time"

	"pet-adoption-platform/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog into the configured storage",
	Long: `Crea usuarios demo, mascotas, productos y citas de ejemplo.
Es idempotente: lo que ya existe no se toca.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) (err error) {
	cfg, log, repos, err := bootstrap(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, repos.Close())
	}()

	rep, err := seed.Apply(cmd.Context(), repos.SeedTarget(), time.Now(), cfg.Password.BcryptCost, log)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
