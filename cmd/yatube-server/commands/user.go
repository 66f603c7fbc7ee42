package commands

import (
	"fmt"

	"github.com/mikepea/yatube/pkg/yatube/admin"
	"github.com/mikepea/yatube/pkg/yatube/models"
	"github.com/spf13/cobra"
)

var (
	// User flags
	userUsername string
	userEmail    string
	userPassword string
	userName     string
	userIsAdmin  bool
)

// userCmd groups the user management subcommands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Long: `Create a user account, optionally with the admin role.

Examples:
  yatube-server user create --username leo --email leo@example.com --password secret123
  yatube-server user create --username root --email root@example.com --password secret123 --admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(userPassword) < 8 {
			return fmt.Errorf("--password must be at least 8 characters")
		}

		cfg := loadConfig(cmd)
		logger, db, err := setup(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		role := models.SystemRoleUser
		if userIsAdmin {
			role = models.SystemRoleAdmin
		}

		user, err := admin.NewService(db, logger).CreateUser(cmd.Context(), admin.NewUser{
			Username: userUsername,
			Email:    userEmail,
			Password: userPassword,
			Name:     userName,
			Role:     role,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d, role %s)\n", user.Username, user.ID, user.SystemRole)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "Username")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "Password (at least 8 characters)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "Display name")
	userCreateCmd.Flags().BoolVar(&userIsAdmin, "admin", false, "Grant the admin role")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("password")
}
