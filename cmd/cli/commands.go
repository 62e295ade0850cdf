package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/adapter/report"
	"github.com/iho/pocketledger/internal/domain"
	"github.com/iho/pocketledger/internal/infrastructure/auth"
)

var errAborted = errors.New("aborted")

func (a *app) addCmd() *cobra.Command {
	var category string
	var expense bool

	cmd := &cobra.Command{
		Use:   "add DESCRIPTION AMOUNT",
		Short: "Add a transaction; a negative amount is an expense",
		Long: `Add a transaction. The sign of AMOUNT decides income or expense.
Pass --expense, or put negative amounts after --, as in: add -- Coffee -3.50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseSignedAmount(args[1], expense)
			if err != nil {
				return err
			}

			tx, err := a.ledger.Add(cmd.Context(), domain.TransactionInput{
				Description: args[0],
				Category:    category,
				Amount:      amount,
			})
			if err != nil {
				return err
			}

			return a.printTransaction(tx, "Added")
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default Other)")
	cmd.Flags().BoolVarP(&expense, "expense", "x", false, "Record AMOUNT as an expense")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var view, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(view, search)
			if err != nil {
				return err
			}

			records := a.ledger.List(filter)
			if a.asJSON {
				return a.printJSON(dto.ListTransactionsResponse{
					Transactions: dto.TransactionsFromDomain(records),
					Total:        len(records),
				})
			}

			a.printTransactions(records)
			return nil
		},
	}

	addFilterFlags(cmd, &view, &search)

	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var category string
	var expense bool

	cmd := &cobra.Command{
		Use:   "edit ID|POSITION DESCRIPTION AMOUNT",
		Short: "Replace a transaction, keeping its place in the ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseSignedAmount(args[2], expense)
			if err != nil {
				return err
			}

			input := domain.TransactionInput{
				Description: args[1],
				Category:    category,
				Amount:      amount,
			}

			var tx *domain.Transaction
			if pos, ok := position(args[0]); ok {
				tx, err = a.ledger.EditAt(cmd.Context(), pos, input)
			} else {
				tx, err = a.ledger.Edit(cmd.Context(), args[0], input)
			}
			if err != nil {
				return err
			}

			return a.printTransaction(tx, "Edited")
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default Other)")
	cmd.Flags().BoolVarP(&expense, "expense", "x", false, "Record AMOUNT as an expense")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID|POSITION",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.confirm(fmt.Sprintf("Delete transaction %s?", args[0])) {
				return errAborted
			}

			var err error
			if pos, ok := position(args[0]); ok {
				err = a.ledger.DeleteAt(cmd.Context(), pos)
			} else {
				err = a.ledger.Delete(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, "Deleted")
			return nil
		},
	}
}

func (a *app) depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit AMOUNT",
		Short: "Move money into savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := domain.ParseAmount(args[0])
			if err != nil {
				return err
			}

			tx, err := a.ledger.SavingsAction(cmd.Context(), domain.ActionDeposit, amount)
			if err != nil {
				return err
			}

			return a.printTransaction(tx, "Deposited")
		},
	}
}

func (a *app) withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw AMOUNT",
		Short: "Move money out of savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := domain.ParseAmount(args[0])
			if err != nil {
				return err
			}

			if !a.confirm(fmt.Sprintf("Withdraw %s from savings?", amount.StringFixed(2))) {
				return errAborted
			}

			tx, err := a.ledger.SavingsAction(cmd.Context(), domain.ActionWithdrawal, amount)
			if err != nil {
				return err
			}

			return a.printTransaction(tx, "Withdrew")
		},
	}
}

func (a *app) limitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "limit [VALUE]",
		Short: "Show or set the spending limit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				value, err := domain.ParseGoalValue(args[0])
				if err != nil {
					return err
				}
				if err := a.ledger.SetSpendingLimit(cmd.Context(), value); err != nil {
					return err
				}
			}

			return a.printGoals()
		},
	}
}

func (a *app) targetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target [VALUE]",
		Short: "Show or set the savings target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				value, err := domain.ParseGoalValue(args[0])
				if err != nil {
					return err
				}
				if err := a.ledger.SetSavingsTarget(cmd.Context(), value); err != nil {
					return err
				}
			}

			return a.printGoals()
		},
	}
}

func (a *app) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new month, keeping only savings movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.confirm("Remove all income and expenses for this month?") {
				return errAborted
			}

			if err := a.ledger.ResetMonth(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Month reset, %d savings records kept\n", len(a.ledger.Transactions()))
			return nil
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	var view, search string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals and goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(view, search)
			if err != nil {
				return err
			}

			summary := a.ledger.Summary(filter)
			if a.asJSON {
				return a.printJSON(dto.SummaryFromDomain(filter, summary))
			}

			return report.WriteTable(a.out, summary)
		},
	}

	addFilterFlags(cmd, &view, &search)

	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var view, search, format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current view as a table, markdown, CSV or PNG chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(view, search)
			if err != nil {
				return err
			}

			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				if f == report.FormatPNG {
					return fmt.Errorf("png export needs --output")
				}
				return report.Write(a.out, f, a.ledger.Summary(filter))
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}

			if err := report.Write(file, f, a.ledger.Summary(filter)); err != nil {
				file.Close()
				os.Remove(output)
				return err
			}

			if err := file.Close(); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Wrote %s\n", output)
			return nil
		},
	}

	addFilterFlags(cmd, &view, &search)
	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "table, markdown, csv or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func (a *app) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the display theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := a.ledger.SetTheme(cmd.Context(), domain.Theme(args[0])); err != nil {
					return err
				}
			}

			if a.asJSON {
				return a.printJSON(dto.ThemeResponse{Theme: a.ledger.Theme()})
			}

			fmt.Fprintln(a.out, a.ledger.Theme())
			return nil
		},
	}
}

func (a *app) tokenCmd() *cobra.Command {
	var scope, subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.AuthEnabled() {
				return fmt.Errorf("AUTH_SECRET is not set")
			}

			s, err := auth.ParseScope(scope)
			if err != nil {
				return err
			}

			token, err := auth.NewTokenManager(a.cfg.AuthSecret, a.cfg.AuthTokenTTL).Generate(subject, s)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", string(auth.ScopeWrite), "read or write")
	cmd.Flags().StringVar(&subject, "subject", "owner", "Token subject")

	return cmd
}

func addFilterFlags(cmd *cobra.Command, view, search *string) {
	cmd.Flags().StringVar(view, "view", string(domain.ViewAll), "all, income, expense or savings")
	cmd.Flags().StringVarP(search, "search", "s", "", "Case-insensitive description search")
}

func parseFilter(view, search string) (domain.Filter, error) {
	v, err := domain.ParseView(view)
	if err != nil {
		return domain.Filter{}, err
	}
	return domain.Filter{View: v, Search: search}, nil
}

// parseSignedAmount parses s, forcing it negative when expense is set.
func parseSignedAmount(s string, expense bool) (decimal.Decimal, error) {
	amount, err := domain.ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if expense {
		amount = amount.Abs().Neg()
	}
	return amount, nil
}

// position parses a 1-based ledger position as printed by list.
func position(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

func (a *app) printTransaction(tx *domain.Transaction, verb string) error {
	if a.asJSON {
		return a.printJSON(dto.TransactionFromDomain(tx))
	}

	fmt.Fprintf(a.out, "%s %s: %s %s (%s, %s)\n",
		verb, tx.ID, tx.Description, tx.Amount.StringFixed(2), tx.Category, tx.Kind)
	return nil
}

func (a *app) printTransactions(records []domain.Transaction) {
	positions := make(map[string]int)
	for i, tx := range a.ledger.Transactions() {
		positions[tx.ID] = i + 1
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"#", "ID", "Date", "Description", "Category", "Amount"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})

	for _, tx := range records {
		table.Append([]string{
			strconv.Itoa(positions[tx.ID]),
			tx.ID,
			tx.Date,
			truncate(tx.Description, 40),
			tx.Category,
			tx.Amount.StringFixed(2),
		})
	}

	table.SetFooter([]string{"", "", "", "", "Count", strconv.Itoa(len(records))})
	table.Render()
}

func (a *app) printGoals() error {
	goals := a.ledger.Goals()
	if a.asJSON {
		return a.printJSON(dto.GoalsFromDomain(goals))
	}

	fmt.Fprintf(a.out, "Spending limit: %s\nSavings target: %s\n",
		goals.SpendingLimit.StringFixed(2), goals.SavingsTarget.StringFixed(2))
	return nil
}
