package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"basegraph.app/cms/common/id"
	"basegraph.app/cms/internal/model"
	"basegraph.app/cms/internal/queue"
	"basegraph.app/cms/internal/service"
	"basegraph.app/cms/internal/store/backends"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage admin panel accounts",
}

var userCreateFlags struct {
	email    string
	password string
	name     string
	role     string
}

var userCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create an account (for bootstrapping the first admin)",
	Example: `  cmsctl user create --email admin@example.com --password 's3cret-pass' --name Admin --role admin`,
	RunE:    runUserCreate,
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userCreateFlags.email, "email", "", "account email (required)")
	f.StringVar(&userCreateFlags.password, "password", "", "account password, at least 8 characters (required)")
	f.StringVar(&userCreateFlags.name, "name", "", "display name")
	f.StringVar(&userCreateFlags.role, "role", string(model.RoleAdmin), "admin or editor")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := id.Init(2); err != nil {
		return fmt.Errorf("initializing id generator: %w", err)
	}

	backend, err := backends.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	users := service.NewUserService(backend.Provider.Users(), queue.NewNopPublisher())
	user, err := users.Create(ctx, service.UserCreate{
		Email:    userCreateFlags.email,
		Password: userCreateFlags.password,
		Name:     userCreateFlags.name,
		Role:     model.Role(userCreateFlags.role),
	})
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s %s (id %d)\n", user.Role, user.Email, user.ID)
	return nil
}
