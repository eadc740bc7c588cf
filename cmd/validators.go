package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
	"github.com/jatin-tres/SUI-Stake-data/internal/ui"
)

var validatorsFind string

var validatorsCmd = &cobra.Command{
	Use:   "validators",
	Short: "List the current validator directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := suiClient()

		spin := ui.NewSpinner("Building validator directory...")
		spin.Start()
		dir := sui.BuildDirectory(cmd.Context(), client)
		spin.Stop()

		if dir.Len() == 0 {
			return errors.New("validator directory unavailable: every RPC endpoint failed")
		}

		find := strings.ToLower(strings.TrimSpace(validatorsFind))
		table := ui.NewTable([]ui.Column{
			{Title: "NAME", Width: 28},
			{Title: "ADDRESS", Width: 66},
		})

		shown := 0
		for _, entry := range dir.Entries() {
			if find != "" && !strings.Contains(strings.ToLower(entry.Name), find) {
				continue
			}
			table.AddRow(ui.Row{entry.Name, entry.Address})
			shown++
		}

		fmt.Println(table.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d of %d validators", shown, dir.Len())))
		return nil
	},
}

func init() {
	validatorsCmd.Flags().StringVar(&validatorsFind, "find", "", "only show names containing this substring")
}
