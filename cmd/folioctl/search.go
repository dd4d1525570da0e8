package main

import (
	"errors"
	"fmt"

	"Folio/internal/api/config"
	"Folio/internal/pkg/es"
	"Folio/internal/repository"
	"Folio/internal/service"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search index maintenance",
	}
	searchCmd.AddCommand(newSearchReindexCommand())
	return searchCmd
}

func newSearchReindexCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the content index from MySQL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Cfg
			if cfg.Elastic.Address == "" {
				return errors.New("elastic.address is not configured")
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			client, err := es.InitClient(cfg.Elastic)
			if err != nil {
				return fmt.Errorf("connect elasticsearch: %w", err)
			}

			searchSvc := service.NewSearchService(
				es.NewContentRepo(client),
				repository.NewMediaRepo(db),
				repository.NewArticleRepo(db),
				repository.NewProjectRepo(db),
				repository.NewPostRepo(db),
			)
			n, err := searchSvc.Reindex(cmd.Context())
			if err != nil {
				return fmt.Errorf("reindex: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d documents into %s\n", n, es.ContentIndex)
			return nil
		},
	}
}
