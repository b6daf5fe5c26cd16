package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/portfolio/internal/db"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the administrator account",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the administrator profile for ADMIN_EMAIL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return eris.New("password must be at least 6 characters")
			}

			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			profile, created, err := db.EnsureAdmin(a.db.WithContext(cmd.Context()), a.cfg.AdminEmail, password)
			if err != nil {
				return eris.Wrap(err, "creating admin profile")
			}
			if profile == nil {
				return eris.New("ADMIN_EMAIL is not configured")
			}

			entry := a.logger.WithField("email", profile.Email)
			if created {
				entry.Info("admin profile created")
			} else {
				entry.Info("admin profile already exists, password unchanged")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the admin account")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
