// Command ftmactl is a thin host-language-style wrapper around the ftma
// core: it loads a YAML description of a run, drives RegisterClient and
// Finalize, and prints the resulting AggregationResult as JSON. It is not
// part of the core protocol; per the design, this CLI is orchestration
// glue, not redesigned cryptography.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vaultmesh/secureagg/pkg/ftma"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ftmactl:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ftmactl",
		Short: "Drive an FTMA secure-aggregation run from a config file",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register clients and finalize an FTMA run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFTMA(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "run.yaml", "path to the run's YAML config")
	return cmd
}

func runFTMA(configPath string) error {
	cfg, err := loadRunConfig(configPath)
	if err != nil {
		return err
	}

	opts := []ftma.Option{ftma.WithScale(cfg.Scale)}
	if cfg.Seed != nil {
		opts = append(opts, ftma.WithSeed(*cfg.Seed))
	}
	coord, err := ftma.NewCoordinator(cfg.NumClients, cfg.Threshold, cfg.Dimension, opts...)
	if err != nil {
		return fmt.Errorf("constructing coordinator: %w", err)
	}

	ctx := context.Background()
	for _, id := range sortedClientIDs(cfg.Clients) {
		if _, err := coord.RegisterClient(ctx, id, cfg.Clients[id]); err != nil {
			return fmt.Errorf("registering client %d: %w", id, err)
		}
	}

	result, err := coord.Finalize(ctx, cfg.Active)
	if err != nil {
		return fmt.Errorf("finalizing: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func sortedClientIDs(clients map[int][]float64) []int {
	ids := make([]int, 0, len(clients))
	for id := range clients {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
