package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sbplanet/currencybank/internal/bank"
	"github.com/sbplanet/currencybank/internal/errs"
)

var createCmd = &cobra.Command{
	Use:   "create <name> [starting-balance]",
	Short: "Create a bank account",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var starting int64
		if len(args) == 2 {
			v, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid starting balance %q", args[1])
			}
			starting = v
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		account, err := a.svc.Create(cmd.Context(), args[0], starting)
		if err != nil {
			return err
		}
		fmt.Printf("Created account %q with ID %06d and balance %s.\n",
			account.Name, account.ID, a.cfg.Formatter().Money(account.Balance))
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <account name or ID>",
	Short: "Show an account's ID and balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		account, err := a.svc.Get(cmd.Context(), bank.ParseIdentifier(args[0]))
		if errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("no bank account matches %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("ID: %06d | Name: %s | Balance: %s\n",
			account.ID, account.Name, a.cfg.Formatter().Money(account.Balance))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bank accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		for _, account := range a.svc.List() {
			fmt.Printf("%06d  %-20s %s\n",
				account.ID, account.Name, a.cfg.Formatter().Money(account.Balance))
		}
		fmt.Printf("%d account(s).\n", a.svc.Count())
		return nil
	},
}

var delCmd = &cobra.Command{
	Use:   "del <name>",
	Short: "Delete a bank account by exact name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		deleted, err := a.svc.Delete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Printf("No account named %q.\n", args[0])
			return nil
		}
		fmt.Printf("Deleted bank account for %s.\n", args[0])
		return nil
	},
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-synchronize the ledger mirror from the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		if err := a.svc.Reload(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Database reloaded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd, infoCmd, listCmd, delCmd, reloadCmd)
}
