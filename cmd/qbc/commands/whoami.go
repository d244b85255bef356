package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the authenticated user",
		Long:  "Fetch the user profile from the legacy user-info endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			info, err := client.Users().GetUserInfo(cmd.Context())
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if output == "json" || output == "yaml" {
				return printEncoded(info, output)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", info.ID)
			_ = table.Append("Name", info.FirstName+" "+info.LastName)
			_ = table.Append("Login", info.Login)
			_ = table.Append("Email", info.Email)
			_ = table.Append("Screen Name", info.ScreenName)
			_ = table.Append("Verified", fmt.Sprint(info.IsVerified))
			_ = table.Append("External Auth", fmt.Sprint(info.ExternalAuth))

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}
