package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/pocketledger/internal/infrastructure/config"
	"github.com/iho/pocketledger/internal/infrastructure/idgen"
	"github.com/iho/pocketledger/internal/infrastructure/logger"
	"github.com/iho/pocketledger/internal/infrastructure/storage"
	"github.com/iho/pocketledger/internal/usecase"
)

// ledgerOpener opens the ledger and returns a function releasing its storage.
type ledgerOpener func(ctx context.Context, cfg *config.Config) (*usecase.LedgerUseCase, func() error, error)

type app struct {
	open   ledgerOpener
	cfg    *config.Config
	ledger *usecase.LedgerUseCase
	close  func() error

	in     *bufio.Reader
	out    io.Writer
	yes    bool
	asJSON bool
}

func main() {
	_ = godotenv.Load()

	root, closeLedger := newRootCmd(openLedger, os.Stdin, os.Stdout)
	err := root.Execute()
	if closeErr := closeLedger(); err == nil {
		err = closeErr
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The returned function releases the
// storage opened by whichever command ran.
func newRootCmd(open ledgerOpener, in io.Reader, out io.Writer) (*cobra.Command, func() error) {
	a := &app{
		open: open,
		in:   bufio.NewReader(in),
		out:  out,
	}

	rootCmd := &cobra.Command{
		Use:           "pocketledger",
		Short:         "Personal finance tracker",
		Long:          `Track income, expenses and savings against a spending limit and a savings target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&a.yes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Print JSON instead of tables")

	rootCmd.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.depositCmd(),
		a.withdrawCmd(),
		a.limitCmd(),
		a.targetCmd(),
		a.resetCmd(),
		a.summaryCmd(),
		a.exportCmd(),
		a.themeCmd(),
		a.tokenCmd(),
	)

	return rootCmd, a.teardown
}

func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg

	ledger, closeFn, err := a.open(ctx, cfg)
	if err != nil {
		return err
	}
	a.ledger = ledger
	a.close = closeFn

	return nil
}

func (a *app) teardown() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

func openLedger(ctx context.Context, cfg *config.Config) (*usecase.LedgerUseCase, func() error, error) {
	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console", Service: "pocketledger-cli"}, os.Stderr)
	if cfg.LogLevel == "info" {
		// Startup chatter is noise in an interactive tool.
		log = log.Level(zerolog.WarnLevel)
	}

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	ledger := usecase.NewLedgerUseCase(backend.Store, idgen.NewULIDGenerator(), usecase.WithLogger(log))
	if err := ledger.Load(ctx); err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("load ledger: %w", err)
	}

	return ledger, backend.Close, nil
}

// confirm asks a yes/no question unless --yes was given.
func (a *app) confirm(prompt string) bool {
	if a.yes {
		return true
	}

	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
