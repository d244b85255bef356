package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Static errors for err113 compliance.
var (
	errRealmRequired = errors.New("realm hostname is required")
	errTokenRequired = errors.New("user token is required")
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var realm string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store realm and user token in the config file",
		Long:  "Prompt for a realm hostname and user token and persist them to ~/.qbc/config.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if realm == "" {
				realm = viper.GetString("realm")
			}

			if realm == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Realm hostname (e.g. acme.quickbase.com): ")
				realm, _ = reader.ReadString('\n')
				realm = strings.TrimSpace(realm)
			}

			if realm == "" {
				return errRealmRequired
			}

			fmt.Print("User token: ")

			tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()

			if err != nil {
				return fmt.Errorf("reading user token: %w", err)
			}

			token := strings.TrimSpace(string(tokenBytes))
			if token == "" {
				return errTokenRequired
			}

			viper.Set("realm", realm)
			viper.Set("user-token", token)

			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("finding home directory: %w", err)
				}

				configFile = filepath.Join(home, ".qbc", "config.yml")
			}

			err = viper.WriteConfigAs(configFile)
			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Println("Credentials saved to", configFile)

			return nil
		},
	}

	cmd.Flags().StringVar(&realm, "realm-name", "", "realm hostname to store")

	return cmd
}
