package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/iho/pocketledger/internal/domain"
)

var transactionHeader = []string{"Date", "Description", "Category", "Kind", "Amount"}

// WriteTable renders the transactions and the summary as boxed text tables.
func WriteTable(w io.Writer, summary domain.Summary) error {
	table := newTable(w)
	table.SetHeader(transactionHeader)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
	})
	table.AppendBulk(transactionRows(summary.Transactions))
	table.Render()

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	totals := newTable(w)
	totals.SetHeader([]string{"Metric", "Value"})
	totals.AppendBulk(summaryRows(summary))
	totals.Render()

	return nil
}

// WriteMarkdown renders the same tables as GitHub-flavoured markdown.
func WriteMarkdown(w io.Writer, summary domain.Summary) error {
	if _, err := fmt.Fprint(w, "## Transactions\n\n"); err != nil {
		return err
	}

	table := newMarkdownTable(w)
	table.SetHeader(transactionHeader)
	table.AppendBulk(transactionRows(summary.Transactions))
	table.Render()

	if _, err := fmt.Fprint(w, "\n## Summary\n\n"); err != nil {
		return err
	}

	totals := newMarkdownTable(w)
	totals.SetHeader([]string{"Metric", "Value"})
	totals.AppendBulk(summaryRows(summary))
	totals.Render()

	return nil
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func newMarkdownTable(w io.Writer) *tablewriter.Table {
	table := newTable(w)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	return table
}

func transactionRows(records []domain.Transaction) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Date,
			r.Description,
			r.Category,
			string(r.Kind),
			r.Amount.StringFixed(2),
		})
	}
	return rows
}

func summaryRows(s domain.Summary) [][]string {
	rows := [][]string{
		{"Income", s.Totals.Income.StringFixed(2)},
		{"Expense", s.Totals.Expense.StringFixed(2)},
		{"Savings", s.Totals.Savings.StringFixed(2)},
		{"Balance", s.Totals.Balance.StringFixed(2)},
		{"Spending limit", fmt.Sprintf("%s%% of %s (%s)",
			s.Spending.Percent.StringFixed(2), s.Spending.Limit.StringFixed(2), s.Spending.Status)},
		{"Savings target", fmt.Sprintf("%s%% of %s", s.Savings.Percent.StringFixed(2), s.Savings.Target.StringFixed(2))},
	}

	for _, c := range s.Totals.CategoryBreakdown() {
		rows = append(rows, []string{"Category: " + c.Category, c.Amount.StringFixed(2)})
	}

	return rows
}
