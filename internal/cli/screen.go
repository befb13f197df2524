package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
)

var screenChain string

var screenCmd = &cobra.Command{
	Use:   "screen [address]",
	Short: "Screen an address and print its risk profile",
	Args:  cobra.ExactArgs(1),
	Run:   runScreen,
}

func init() {
	screenCmd.Flags().StringVar(&screenChain, "chain", string(domain.ChainETH), "chain of the address")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) {
	cfg := setup()
	st := newStore(cfg, emitter.Nop{})

	chain := domain.Chain(strings.ToUpper(screenChain))
	_, res, err := st.AddScreening(context.Background(), args[0], chain, "")
	if err != nil {
		slog.Error("Failed to screen address", "address", args[0], "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintf(w, "Address\t%s\n", res.Address)
	_, _ = fmt.Fprintf(w, "Chain\t%s\n", domain.ChainLabels[res.Chain])
	_, _ = fmt.Fprintf(w, "Risk\t%s\n", res.Risk.Label())
	_, _ = fmt.Fprintf(w, "Owner\t%s (%s)\n", res.OwnerName, res.OwnerType)
	_, _ = fmt.Fprintf(w, "Label\t%s (%s)\n", res.UserLabel, res.UserType)
	_, _ = fmt.Fprintf(w, "Balance\t%s %s (US$ %s)\n", res.BalanceNative.StringFixed(4), res.Asset, res.BalanceUSD.StringFixed(2))
	_, _ = fmt.Fprintf(w, "Assets\t%s\n", strings.Join(res.DigitalAssets, ", "))
	_, _ = fmt.Fprintf(w, "Activity\t%s to %s\n", res.EarliestTx.Format(time.DateOnly), res.LatestTx.Format(time.DateOnly))
	_, _ = fmt.Fprintf(w, "Open alerts\t%d\n", res.OpenAlerts)
	_ = w.Flush()

	if len(res.Alerts) == 0 {
		return
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ALERT\tLEVEL\tDIRECTION\tSTATUS\tRULE")
	for _, a := range res.Alerts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Level, a.Direction, a.Status, a.RuleName)
	}
	_ = w.Flush()
}
