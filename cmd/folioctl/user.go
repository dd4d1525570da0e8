package main

import (
	"fmt"
	"time"

	"Folio/internal/api/config"
	"Folio/internal/pkg/database"
	"Folio/internal/pkg/redis"
	"Folio/internal/pkg/security"
	"Folio/internal/repository"
	"Folio/internal/service"

	"github.com/spf13/cobra"
)

func newUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	userCmd.AddCommand(newUserCreateCommand())
	return userCmd
}

func newUserCreateCommand() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a login account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Cfg
			security.Configure(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

			db, err := openDB()
			if err != nil {
				return err
			}
			if err = database.AutoMigrate(db); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			admins := security.NewAdminList(cfg.Auth.AdminEmails)
			authSvc := service.NewAuthService(repository.NewUserRepo(db), redis.NewTokenStore(), admins)
			user, err := authSvc.CreateUser(cmd.Context(), email, password, name)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			role := "member"
			if authSvc.IsAdmin(user.Email) {
				role = "admin"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s> (%s)\n", user.ID, user.Email, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password, at least 6 characters")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
