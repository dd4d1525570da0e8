package main

import (
	"fmt"

	"Folio/internal/api/config"
	"Folio/internal/job"
	"Folio/internal/pkg/minio"
	"Folio/internal/pkg/redis"

	"github.com/spf13/cobra"
)

func newMediaCommand() *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Media storage maintenance",
	}
	mediaCmd.AddCommand(newMediaCleanupCommand())
	return mediaCmd
}

// newMediaCleanupCommand 立即执行一次孤儿上传清理，与定时任务逻辑一致
func newMediaCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove uploaded objects whose media row was never written",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Cfg
			if err := redis.InitRedis(cfg.Redis); err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			storage, err := minio.NewStorage(cmd.Context(), cfg.MinIO)
			if err != nil {
				return fmt.Errorf("connect minio: %w", err)
			}

			n, err := job.NewMediaCleanupJob(redis.NewMediaTempStore(), storage).Cleanup(cmd.Context())
			if err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d orphaned uploads\n", n)
			return nil
		},
	}
}
