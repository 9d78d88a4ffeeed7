package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jon4hz/prodkeep/config"
	"github.com/jon4hz/prodkeep/database"
)

var createSuperuserFlags struct {
	Email    string
	Password string
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Create a superuser account",
	Long:  `Create a user account with the staff and superuser flags set.`,
	Example: `prodkeep create-superuser --email admin@example.com --password secretpass
  prodkeep create-superuser -c config.yml --email admin@example.com --password secretpass`,
	Run: createSuperuser,
}

func init() {
	createSuperuserCmd.Flags().StringVar(&createSuperuserFlags.Email, "email", "", "Email address of the superuser")
	createSuperuserCmd.Flags().StringVar(&createSuperuserFlags.Password, "password", "", "Password of the superuser")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(createSuperuserCmd)
}

func createSuperuser(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// same policy as the signup endpoint
	if !cfg.ValidPassword(createSuperuserFlags.Password) {
		log.Fatalf("password is too short, minimum length is %d", cfg.MinPasswordLength)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint: errcheck

	user, err := db.CreateSuperuser(cmd.Context(), createSuperuserFlags.Email, createSuperuserFlags.Password)
	if err != nil {
		log.Fatalf("failed to create superuser: %v", err)
	}

	log.Info("superuser created", "id", user.ID, "email", user.Email)
}
