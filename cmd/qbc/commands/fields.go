package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFieldsCommand creates the fields command
func NewFieldsCommand() *cobra.Command {
	var tableID string

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the fields of a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			fields, err := client.Fields().List(cmd.Context(), tableID)
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if output == "json" || output == "yaml" {
				return printEncoded(fields, output)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Label", "Type")

			for _, field := range fields {
				_ = table.Append(strconv.Itoa(field.ID), field.Label, field.Type)
			}

			if err := table.Render(); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table id (required)")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}
