package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sbplanet/currencybank/internal/bank"
	"github.com/sbplanet/currencybank/internal/errs"
)

func parseAmount(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return v, nil
}

func optionalMessage(args []string, from int) string {
	if len(args) > from {
		return args[from]
	}
	return ""
}

var giveCmd = &cobra.Command{
	Use:   "give <account name or ID> <amount> [message]",
	Short: "Give currency to an account from the server",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		account, err := a.svc.ChangeBy(cmd.Context(), bank.ParseIdentifier(args[0]), amount)
		if errors.Is(err, errs.ErrAccountNotFound) {
			return fmt.Errorf("no bank account matches %q", args[0])
		}
		if err != nil {
			return err
		}
		auditErr(a.audit.Gain(account, amount, optionalMessage(args, 2)))
		fmt.Printf("Gave %s to %s. New balance: %s.\n",
			a.cfg.Formatter().Money(amount), account.Name, a.cfg.Formatter().Money(account.Balance))
		return nil
	},
}

var takeCmd = &cobra.Command{
	Use:   "take <account name or ID> <amount> [message]",
	Short: "Take currency from an account",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		account, err := a.svc.ChangeBy(cmd.Context(), bank.ParseIdentifier(args[0]), -amount)
		if errors.Is(err, errs.ErrAccountNotFound) {
			return fmt.Errorf("no bank account matches %q", args[0])
		}
		if err != nil {
			return err
		}
		auditErr(a.audit.Loss(account, amount, optionalMessage(args, 2)))
		fmt.Printf("Took %s from %s. New balance: %s.\n",
			a.cfg.Formatter().Money(amount), account.Name, a.cfg.Formatter().Money(account.Balance))
		return nil
	},
}

var payCmd = &cobra.Command{
	Use:   "pay <sender> <receiver> <amount> [message]",
	Short: "Transfer currency between two accounts",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		sender, receiver, err := a.svc.Pay(cmd.Context(),
			bank.ParseIdentifier(args[0]), bank.ParseIdentifier(args[1]), amount)
		switch {
		case errors.Is(err, errs.ErrAccountNotFound):
			return errors.New("invalid bank account")
		case errors.Is(err, errs.ErrInsufficientFunds):
			return errors.New("sender cannot afford this payment")
		case err != nil:
			return err
		}
		auditErr(a.audit.Payment(sender, receiver, amount, optionalMessage(args, 3)))
		fmt.Printf("Paid %s to %s. Sender balance: %s.\n",
			a.cfg.Formatter().Money(amount), receiver.Name, a.cfg.Formatter().Money(sender.Balance))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(giveCmd, takeCmd, payCmd)
}
