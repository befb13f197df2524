package cli

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the seeded demo dataset as JSON",
	Run:   runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := setup()
	ds := dataset(cfg)

	out := os.Stdout
	if generateOut != "" {
		f, err := os.Create(generateOut)
		if err != nil {
			slog.Error("Failed to create output file", "path", generateOut, "error", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		slog.Error("Failed to write dataset", "error", err)
		os.Exit(1)
	}
	if generateOut != "" {
		slog.Info("Dataset written", "path", generateOut, "transactions", len(ds.Transactions), "cases", len(ds.Cases))
	}
}
