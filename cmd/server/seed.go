package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vendops/inventory-admin/internal/core/service"
	mongodb "github.com/vendops/inventory-admin/internal/infrastructure/db/mongo"
	"github.com/vendops/inventory-admin/internal/infrastructure/seed"
	"github.com/vendops/inventory-admin/internal/pkg/config"
	"github.com/vendops/inventory-admin/pkg/logger"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert machines from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), opts, file, cmd)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a machines list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runSeed(ctx context.Context, opts *rootOptions, file string, cmd *cobra.Command) error {
	cfg, err := config.Load(ctx, opts.envFile)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "inventory-admin"})

	fixtures, err := seed.LoadFile(file)
	if err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	machines := mongodb.NewMachineRepository(db)
	if err := mongodb.EnsureIndexes(ctx, machines); err != nil {
		return err
	}

	n, err := service.NewInventoryService(machines, log).SeedMachines(ctx, fixtures)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d machine(s) from %s\n", n, file)
	return nil
}
