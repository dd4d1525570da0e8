package main

import (
	"fmt"
	"os"

	"Folio/internal/api/config"
	"Folio/internal/pkg/database"
	"Folio/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configDir string

func main() {
	rootCommand := cobra.Command{
		Use:           "folioctl",
		Short:         "Folio administration tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configDir != "" {
				err = config.LoadConfigFrom(configDir)
			} else {
				err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.InitLogger(config.LogstashConfig{})
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yaml")

	rootCommand.AddCommand(
		newUserCommand(),
		newSearchCommand(),
		newMediaCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "folioctl: %+v\n", err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	dbCfg := config.Cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
