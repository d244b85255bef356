package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCacheCommand creates the cache command group
func NewCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(newCacheClearCommand())
	cmd.AddCommand(newCacheStatsCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached query response",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			err = client.ClearResponseCache(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println("response cache cleared")

			return nil
		},
	}
}

func newCacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show response cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			stats := client.CacheStats()
			if stats == nil {
				fmt.Println("caching disabled")

				return nil
			}

			return printEncoded(stats, viper.GetString("output"))
		},
	}
}
