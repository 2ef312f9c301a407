package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/setbook/sheetstore/expire"
	"github.com/setbook/sheetstore/gsheets"
	"github.com/setbook/sheetstore/store"
)

// rowStore is built once by the root command and shared by all
// subcommands, already resolved against the principal's spreadsheet.
var rowStore *store.Store

var rootCmd = &cobra.Command{
	Use:   "sheetstore",
	Short: "spreadsheet-backed row store",
	Long: `sheetstore inspects and mutates the spreadsheet backing a row store.

Environment (also read from .env / .env.local):
  SHEETSTORE_TOKEN  OAuth2 access token with Sheets and Drive scopes
  SHEETSTORE_USER   account id of the principal
  SHEETSTORE_TITLE  spreadsheet title (optional)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(".env.local")

		token := os.Getenv("SHEETSTORE_TOKEN")
		if token == "" {
			return fmt.Errorf("SHEETSTORE_TOKEN not set")
		}
		user := os.Getenv("SHEETSTORE_USER")
		if user == "" {
			return fmt.Errorf("SHEETSTORE_USER not set")
		}

		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		remote, err := gsheets.New(cmd.Context(), ts)
		if err != nil {
			return err
		}

		cfg := store.DefaultConfig()
		if title := os.Getenv("SHEETSTORE_TITLE"); title != "" {
			cfg.SpreadsheetTitle = title
		}
		rowStore = store.New(remote, store.DefaultSchema(), cfg)

		id, err := rowStore.Resolve(cmd.Context(), store.Verified(user))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "spreadsheet: %s\n", id)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [table]",
	Short: "Print all rows of a table as JSON lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := rowStore.Select(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	},
}

var insertCmd = &cobra.Command{
	Use:   "insert [table] [column=value ...]",
	Short: "Insert one row",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := store.Record{}
		for _, pair := range args[1:] {
			col, val, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("argument %q is not column=value", pair)
			}
			rec[col] = val
		}
		if err := rowStore.Insert(cmd.Context(), args[0], rec); err != nil {
			return err
		}
		fmt.Println(rec["id"])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [table] [id]",
	Short: "Delete the row with the given id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rowStore.Delete(cmd.Context(), args[0], store.Eq{Column: "id", Value: args[1]})
	},
}

var grantCmd = &cobra.Command{
	Use:   "grant [email]",
	Short: "Grant write access to an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rowStore.Grant(cmd.Context(), args[0])
	},
}

var grantsCmd = &cobra.Command{
	Use:   "grants",
	Short: "List access grants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		grants, err := rowStore.ListGrants(cmd.Context())
		if err != nil {
			return err
		}
		for _, g := range grants {
			fmt.Printf("%s\t%s\t%s\n", g.ID, g.Email, g.Role)
		}
		return nil
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke [grant-id]",
	Short: "Revoke an access grant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rowStore.Revoke(cmd.Context(), args[0])
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch [spreadsheet-id]",
	Short: "Target a shared spreadsheet (omit the id to switch back)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		if err := rowStore.SwitchTo(cmd.Context(), target); err != nil {
			return err
		}
		fmt.Println(rowStore.CurrentSpreadsheet())
		return nil
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep [user-id]",
	Short: "Expire overdue workouts for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sweeper := expire.NewSweeper(rowStore, nil)
		n, err := sweeper.Sweep(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("expired %d workouts\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, insertCmd, deleteCmd, grantCmd, grantsCmd, revokeCmd, switchCmd, sweepCmd)
}
