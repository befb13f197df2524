package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
	"github.com/Dr-Boom/KYT-Demo/internal/view"
)

var (
	txFilter   view.TransactionFilter
	caseFilter view.CaseFilter
	caseSort   string
	dateFrom   string
	dateTo     string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the transaction KPI distributions",
	Run:   runDashboard,
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List cases matching the given filters",
	Run:   runCases,
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&txFilter.Chain, "chain", view.All, "chain filter")
	f.StringVar(&txFilter.Asset, "asset", view.All, "asset filter")
	f.StringVar(&txFilter.Risk, "risk", view.All, "risk level filter")
	f.StringVar(&txFilter.Status, "status", view.All, "transaction status filter")
	f.StringVar(&txFilter.Search, "search", "", "hash or id search")
	f.StringVar(&dateFrom, "from", "", "first day, YYYY-MM-DD")
	f.StringVar(&dateTo, "to", "", "last day, YYYY-MM-DD")

	f = casesCmd.Flags()
	f.StringVar(&caseFilter.Type, "type", view.All, "case type filter (CRYPTO, FIAT)")
	f.StringVar(&caseFilter.Status, "status", view.All, "case status filter")
	f.StringVar(&caseFilter.Priority, "priority", view.All, "priority filter")
	f.StringVar(&caseFilter.Assignee, "assignee", view.All, "assignee filter, or \"unassigned\"")
	f.StringVar(&caseFilter.Search, "search", "", "case id, customer or hash search")
	f.StringVar(&caseSort, "sort", "", "sort keys, e.g. priority:desc,ageing")
	f.StringVar(&dateFrom, "from", "", "first day, YYYY-MM-DD")
	f.StringVar(&dateTo, "to", "", "last day, YYYY-MM-DD")

	rootCmd.AddCommand(dashboardCmd, casesCmd)
}

func dateRange() view.DateRange {
	return view.DateRange{From: dateFrom, To: dateTo, Location: time.UTC}
}

func runDashboard(cmd *cobra.Command, args []string) {
	cfg := setup()
	st := newStore(cfg, emitter.Nop{})
	snap := st.Snapshot()

	txFilter.Range = dateRange()
	txs := view.Filter(snap.Transactions, txFilter.Normalize().Match)
	d := view.BuildDashboard(txs, snap.Rules)

	fmt.Printf("Transactions: %d\n\n", d.Total)
	printBuckets(os.Stdout, "RISK", d.RiskDistribution, d.Total)
	printBuckets(os.Stdout, "STATUS", d.StatusDistribution, d.Total)
	printBuckets(os.Stdout, "RULE", d.TopRules, 0)
	printBuckets(os.Stdout, "ASSET", d.AssetVolume, d.Total)
}

func printBuckets(out io.Writer, title string, buckets []view.Bucket, total int) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintf(w, "%s\tCOUNT\tSHARE\n", title)
	for _, b := range buckets {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", view.Percent(float64(b.Count), float64(total)))
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", b.Label, b.Count, share)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintln(out)
}

func runCases(cmd *cobra.Command, args []string) {
	cfg := setup()
	st := newStore(cfg, emitter.Nop{})

	keys, err := view.ParseSort(caseSort, view.CaseFields)
	if err != nil {
		slog.Error("Invalid sort", "sort", caseSort, "error", err)
		os.Exit(1)
	}
	caseFilter.Range = dateRange()
	cases := view.FilterAndSort(st.Cases(), caseFilter.Normalize().Match, keys, view.CaseFields)

	if len(cases) == 0 {
		fmt.Println("No results.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "CASE\tTYPE\tSTATUS\tPRIORITY\tASSIGNEE\tCUSTOMER\tAGEING")
	for _, c := range cases {
		assignee := c.AssigneeName()
		if assignee == "" {
			assignee = "Unassigned"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Type, c.Status, c.Priority, assignee, c.CustomerName, c.Ageing)
	}
	_ = w.Flush()

	s := view.SummarizeCases(cases)
	fmt.Printf("\n%d cases, %d active, %d high priority, %d unassigned, average ageing %.1f days\n",
		s.Total, s.Active, s.HighPriority, s.Unassigned, s.AverageAgeing)
}
