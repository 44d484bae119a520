package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/markjakearzadon/denovi-gobackend/internal/services"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deactivate every announcement whose end date has passed",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, closeDB, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		svc := services.NewAnnouncementService(services.NewMongoAnnouncements(database), cfg.Location())
		n := svc.CleanupExpired(cmd.Context(), time.Now())
		fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d expired announcements\n", n)
		return nil
	},
}
