package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/quickbase-client/internal/constants"
	"github.com/fivetwenty-io/quickbase-client/pkg/qb"
	"github.com/fivetwenty-io/quickbase-client/pkg/qbclient"
)

// newClient builds a client from the resolved configuration.
func newClient() (qb.Client, error) {
	realm := viper.GetString("realm")
	if realm == "" {
		return nil, constants.ErrNoRealmConfigured
	}

	token := viper.GetString("user-token")
	if token == "" {
		return nil, constants.ErrNoTokenConfigured
	}

	return qbclient.New(&qb.Config{
		Realm:     realm,
		UserToken: token,
	})
}

// parseFieldIDs parses a comma-separated field id list like "3,6,7".
func parseFieldIDs(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	ids := make([]int, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid field id %q: %w", part, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

// parseSortSpec parses a sort list like "6:ASC,7:DESC".
func parseSortSpec(spec string) ([]qb.SortField, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	sorts := make([]qb.SortField, 0, len(parts))

	for _, part := range parts {
		fieldSpec, order, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			order = qb.SortAscending
		}

		fieldID, err := strconv.Atoi(fieldSpec)
		if err != nil {
			return nil, fmt.Errorf("invalid sort field %q: %w", part, err)
		}

		sorts = append(sorts, qb.SortField{FieldID: fieldID, Order: strings.ToUpper(order)})
	}

	return sorts, nil
}

// printEncoded writes v as indented JSON or YAML to stdout.
func printEncoded(v any, format string) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(v)
	default:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(v)
	}
}

// renderFlatRecords prints flat records as a table, one column per key.
func renderFlatRecords(records []qb.FlatRecord) error {
	keySet := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			keySet[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(os.Stdout)

	header := make([]any, 0, len(keys))
	for _, key := range keys {
		header = append(header, key)
	}

	table.Header(header...)

	for _, record := range records {
		row := make([]any, 0, len(keys))
		for _, key := range keys {
			row = append(row, fmt.Sprint(record[key]))
		}

		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
