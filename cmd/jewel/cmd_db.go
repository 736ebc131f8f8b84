package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shirshak001/JEWEL/app/repositories"
	"github.com/shirshak001/JEWEL/app/services"
	"github.com/shirshak001/JEWEL/config"
	"github.com/shirshak001/JEWEL/database/seeders"
	"github.com/shirshak001/JEWEL/pkg/database"
	"github.com/shirshak001/JEWEL/pkg/session"
)

// connectDB loads config and opens the MongoDB connection for a one-shot
// CLI command.
func connectDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(ctx)
}

// jewel seed — run every registered database seeder.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with starter catalogue data",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := connectDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		fmt.Println("Seeding database …")
		return seeders.RunAll(ctx, database.DB())
	},
}

// jewel admin:create — create an admin user.
var adminCreateCmd = &cobra.Command{
	Use:   "admin:create",
	Short: "Create an admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := connectDB(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background())

		auth := services.NewAuthService(
			repositories.NewUserRepository(),
			session.NewStore(config.SessionTTL()),
		)
		user, err := auth.CreateAdmin(ctx, name, email, password, role)
		if err != nil {
			return err
		}
		fmt.Printf("Created %s user %s (%s)\n", user.Role, user.Name, user.Email)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().String("name", "", "display name")
	adminCreateCmd.Flags().String("email", "", "login email")
	adminCreateCmd.Flags().String("password", "", "password, minimum 8 characters")
	adminCreateCmd.Flags().String("role", "admin", "admin, editor or viewer")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
}
