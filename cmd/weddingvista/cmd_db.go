package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/inbasree/weddingvista/config"
	"github.com/inbasree/weddingvista/database/seeders"
	"github.com/inbasree/weddingvista/pkg/database"
)

// weddingvista seed: populate the starter catalog and admin account.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all registered database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close(context.Background())

		return seeders.RunAll(ctx, db.Database())
	},
}
