package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/classify"
	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
	"github.com/jatin-tres/SUI-Stake-data/internal/ui"
)

var txKeyword string

var txCmd = &cobra.Command{
	Use:   "tx <digest>",
	Short: "Fetch and classify a single transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest := args[0]

		keyword := txKeyword
		if keyword == "" {
			keyword = cfg.Keyword
		}
		if keyword == "" {
			return errors.New("no keyword: pass --keyword (e.g. --keyword Nansen)")
		}

		client := suiClient()

		spin := ui.NewSpinner("Fetching transaction...")
		spin.Start()
		dir := sui.BuildDirectory(cmd.Context(), client)
		block, err := client.GetTransactionBlock(cmd.Context(), digest)
		spin.Stop()

		if err != nil {
			var rpcErr *rpc.Error
			if errors.As(err, &rpcErr) {
				return fmt.Errorf("node rejected the digest: %w", rpcErr)
			}
			return err
		}

		res := classify.Classify(block, dir, keyword)

		amount := "Not Found"
		if res.HasAmount {
			amount = res.Amount.String() + " SUI"
		}
		timestamp := "—"
		if ts, ok := block.Time(); ok {
			timestamp = ts.Format("2006-01-02 15:04:05 UTC")
		}
		matched := "no"
		if res.Matched {
			matched = "yes"
		}

		fmt.Println(ui.KeyValueBlock(
			"Transaction",
			[][2]string{
				{"Digest", block.Digest},
				{"Timestamp", timestamp},
				{"Keyword", keyword},
				{"Matched", matched},
				{"Amount", amount},
				{"Note", res.Note},
				{"Events", fmt.Sprintf("%d", len(block.Events))},
				{"Balance changes", fmt.Sprintf("%d", len(block.BalanceChanges))},
			},
		))
		return nil
	},
}

func init() {
	txCmd.Flags().StringVarP(&txKeyword, "keyword", "k", "", "search keyword (default: last used)")
}
