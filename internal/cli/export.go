package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/infra/storage/postgres"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the generated dataset to Postgres",
	Run:   runExport,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the row counts of the exported snapshot",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(exportCmd, statusCmd)
}

func openDB(ctx context.Context, cfg postgres.Config) *postgres.DB {
	db, err := postgres.NewDB(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	return db
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := setup()
	ctx := context.Background()

	db := openDB(ctx, cfg.Database)
	defer func() {
		_ = db.Close()
	}()

	collectCtx, stopCollector := context.WithCancel(ctx)
	defer stopCollector()
	db.StartMetricsCollector(collectCtx, time.Second)

	if err := db.Migrate(ctx); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	snap := newStore(cfg, emitter.Nop{}).Snapshot()
	stats, err := db.Export(ctx, postgres.Snapshot{
		Rules:        snap.Rules,
		Transactions: snap.Transactions,
		Cases:        snap.Cases,
	})
	if err != nil {
		slog.Error("Failed to export snapshot", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d rules, %d transactions, %d alerts and %d cases\n",
		stats.Rules, stats.Transactions, stats.Alerts, stats.Cases)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg := setup()
	ctx := context.Background()

	db := openDB(ctx, cfg.Database)
	defer func() {
		_ = db.Close()
	}()

	stats, err := db.Counts(ctx)
	if err != nil {
		slog.Error("Failed to count rows", "error", err)
		os.Exit(1)
	}
	risks, err := db.RiskCounts(ctx)
	if err != nil {
		slog.Error("Failed to count risk levels", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "TABLE\tROWS")
	_, _ = fmt.Fprintf(w, "rules\t%d\n", stats.Rules)
	_, _ = fmt.Fprintf(w, "transactions\t%d\n", stats.Transactions)
	_, _ = fmt.Fprintf(w, "alerts\t%d\n", stats.Alerts)
	_, _ = fmt.Fprintf(w, "cases\t%d\n", stats.Cases)
	_ = w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "RISK\tTRANSACTIONS")
	for _, level := range domain.RiskLevels {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", level, risks[level])
	}
	_ = w.Flush()
}
