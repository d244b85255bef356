package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// NewUpsertCommand creates the upsert command
func NewUpsertCommand() *cobra.Command {
	var (
		tableID      string
		file         string
		mergeFieldID int
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Create or update records in a table",
		Long: `Upsert records from a YAML or JSON file.

The file holds a list of records, each mapping field ids to values:

  - "6": Bob
    "7": 42
  - "6": Alice
    "7": 17`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading records file: %w", err)
			}

			var rows []map[string]any

			err = yaml.Unmarshal(raw, &rows)
			if err != nil {
				return fmt.Errorf("parsing records file: %w", err)
			}

			data := make([]qb.WireRecord, 0, len(rows))
			for _, row := range rows {
				data = append(data, qb.Normalize(row))
			}

			request := &qb.UpsertRequest{
				To:           tableID,
				Data:         data,
				MergeFieldID: mergeFieldID,
			}

			var result *qb.UpsertResult
			if strict {
				result, err = client.Records().StrictUpsert(cmd.Context(), request)
			} else {
				result, err = client.Records().Upsert(cmd.Context(), request)
			}

			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if output == "json" || output == "yaml" {
				return printEncoded(result.Metadata, output)
			}

			fmt.Printf("processed %d record(s): %d created, %d updated\n",
				result.TotalProcessed(), result.CreatedCount(), result.UpdatedCount())

			if result.HasErrors() {
				fmt.Printf("line errors: %v\n", result.Metadata.LineErrors)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table id (required)")
	cmd.Flags().StringVar(&file, "file", "", "records file, YAML or JSON (required)")
	cmd.Flags().IntVar(&mergeFieldID, "merge-field", 0, "field id used to match existing records")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any record line reports an error")
	_ = cmd.MarkFlagRequired("table")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
