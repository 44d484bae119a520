package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/markjakearzadon/denovi-gobackend/internal/config"
	"github.com/markjakearzadon/denovi-gobackend/internal/db"
	"github.com/markjakearzadon/denovi-gobackend/internal/logger"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "denovi",
	Short: "Announcement admin backend for the Denovi community app",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.LogFormat = logFormat
		}
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level (debug|info|warn|error|fatal|panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json|pretty)")
	rootCmd.AddCommand(serveCmd, cleanupCmd, createAdminCmd)
}

// connect opens the configured database; the returned func disconnects.
func connect(ctx context.Context) (*mongo.Database, func(), error) {
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}
	return client.Database(cfg.MongoDB), closeFn, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
