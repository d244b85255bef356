package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
)

// NewQueryCommand creates the query command
func NewQueryCommand() *cobra.Command {
	var (
		tableID    string
		selectSpec string
		where      string
		sortSpec   string
		top        int
		skip       int
		useLabels  bool
		ttlMinutes int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query records from a table",
		Long:  "Run a records query against a table and print the matching rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			fields, err := parseFieldIDs(selectSpec)
			if err != nil {
				return err
			}

			sortBy, err := parseSortSpec(sortSpec)
			if err != nil {
				return err
			}

			request := &qb.QueryRequest{
				From:   tableID,
				Select: fields,
				Where:  where,
				SortBy: sortBy,
			}

			if top > 0 || skip > 0 {
				request.Options = &qb.QueryOptions{Top: top, Skip: skip}
			}

			var result *qb.QueryResult
			if ttlMinutes > 0 {
				result, err = client.Records().QueryCached(cmd.Context(), request, time.Duration(ttlMinutes)*time.Minute)
			} else {
				result, err = client.Records().Query(cmd.Context(), request)
			}

			if err != nil {
				return err
			}

			records, err := result.FlatRecords(useLabels)
			if err != nil {
				return err
			}

			output := viper.GetString("output")
			if output == "json" || output == "yaml" {
				return printEncoded(records, output)
			}

			if err := renderFlatRecords(records); err != nil {
				return err
			}

			fmt.Printf("%d of %d record(s)\n", result.NumRecords(), result.Metadata.TotalRecords)

			return nil
		},
	}

	cmd.Flags().StringVar(&tableID, "table", "", "table id (required)")
	cmd.Flags().StringVar(&selectSpec, "select", "", "comma-separated field ids, e.g. 3,6,7")
	cmd.Flags().StringVar(&where, "where", "", "query predicate, passed through verbatim")
	cmd.Flags().StringVar(&sortSpec, "sort", "", "sort spec, e.g. 6:ASC,7:DESC")
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of records")
	cmd.Flags().IntVar(&skip, "skip", 0, "number of records to skip")
	cmd.Flags().BoolVar(&useLabels, "labels", false, "key output by field label instead of id")
	cmd.Flags().IntVar(&ttlMinutes, "cache-ttl", 0, "serve from the response cache with this TTL in minutes")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}
