package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or reset persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.KeyValueBlock(
			"Configuration",
			[][2]string{
				{"RPC endpoints", strings.Join(cfg.RPCs, "\n                       ")},
				{"Batch size", fmt.Sprintf("%d", cfg.BatchSize)},
				{"Default keyword", cfg.Keyword},
			},
		))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.Reset()
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("configuration reset to defaults"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configResetCmd)
}
