package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tnguyen21/securedesk/internal/datastore"
	"github.com/tnguyen21/securedesk/internal/employee"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the database connectivity probe once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := datastore.NewProber(cfg.Database)
		if err != nil {
			return err
		}
		v, err := p.Probe(cmd.Context())
		if err != nil {
			return fmt.Errorf("database check failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database check: %s\n", v)
		return nil
	},
}

var passwdPassword string

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Create an operator account or change its password",
	Long: `Stores a bcrypt hash of the password for the given operator. The
password is taken from --password or, if that is empty, from the first
line of standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(args[0])
		if username == "" {
			return fmt.Errorf("username is required")
		}
		password := passwdPassword
		if password == "" {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		store, err := employee.OpenStore(cmd.Context(), cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer store.Close()

		if err := store.SetPassword(cmd.Context(), username, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %q.\n", username)
		return nil
	},
}

func init() {
	passwdCmd.Flags().StringVar(&passwdPassword, "password", "", "new password (read from stdin when empty)")
}
