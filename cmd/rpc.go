package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/rpc"
	"github.com/jatin-tres/SUI-Stake-data/internal/ui"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage and probe the RPC endpoint list",
}

var rpcListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the failover-ordered endpoint list",
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, url := range cfg.RPCs {
			fmt.Printf("  %d. %s\n", i+1, ui.Addr(url))
		}
		return nil
	},
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Append an endpoint to the failover list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("added " + args[0]))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Drop an endpoint from the failover list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("removed " + args[0]))
		return nil
	},
}

var rpcProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Ping every endpoint and show latency + checkpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		spin := ui.NewSpinner("Probing endpoints...")
		spin.Start()
		statuses := rpc.ProbeAll(cmd.Context(), cfg.RPCs)
		spin.Stop()

		table := ui.NewTable([]ui.Column{
			{Title: "ENDPOINT", Width: 48},
			{Title: "LATENCY", Width: 10},
			{Title: "CHECKPOINT", Width: 12},
			{Title: "STATUS", Width: 24},
		})
		for _, s := range statuses {
			status := ui.Success("ok")
			if !s.Healthy() {
				status = ui.Err(s.Err.Error())
			}
			table.AddRow(ui.Row{
				s.URL,
				s.Latency.Round(time.Millisecond).String(),
				fmt.Sprintf("%d", s.Checkpoint),
				status,
			})
		}
		fmt.Println(table.Render())
		return nil
	},
}

func init() {
	rpcCmd.AddCommand(rpcListCmd, rpcAddCmd, rpcRemoveCmd, rpcProbeCmd)
}
