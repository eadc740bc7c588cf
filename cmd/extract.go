package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jatin-tres/SUI-Stake-data/internal/extract"
	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
	"github.com/jatin-tres/SUI-Stake-data/internal/tabfile"
	"github.com/jatin-tres/SUI-Stake-data/internal/ui"
)

var (
	extractColumn  string
	extractKeyword string
	extractOut     string
	extractBatch   int
	extractNoTUI   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file.csv>",
	Short: "Classify every digest in a CSV and write the results",
	Long: `Reads a CSV with a transaction digest column, fetches each digest in
batches over JSON-RPC, classifies stakes/transfers against the keyword,
and writes the input table back out with amount, note and timestamp
columns appended.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		keyword := strings.TrimSpace(extractKeyword)
		if keyword == "" {
			keyword = cfg.Keyword
		}
		if keyword == "" {
			return errors.New("no keyword: pass --keyword (e.g. --keyword Nansen)")
		}

		table, err := tabfile.Read(path)
		if err != nil {
			return err
		}

		colIdx := 0
		if extractColumn != "" {
			colIdx, err = table.Column(extractColumn)
			if err != nil {
				return err
			}
		}
		digests := table.Values(colIdx)
		if len(digests) == 0 {
			return fmt.Errorf("%s has no data rows", path)
		}

		batchSize := extractBatch
		if batchSize == 0 {
			batchSize = cfg.BatchSize
		}

		client := suiClient()

		spin := ui.NewSpinner("Building validator directory...")
		spin.Start()
		dir := sui.BuildDirectory(cmd.Context(), client)
		if dir.Len() == 0 {
			spin.StopWithMsg(ui.Warn("Validator directory unavailable — running in blind mode (raw addresses)"))
		} else {
			spin.StopWithMsg(ui.Success(fmt.Sprintf("Validator directory ready (%d validators)", dir.Len())))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var rows []extract.Row
		if extractNoTUI {
			rows, err = runPlain(ctx, client, dir, digests, keyword, batchSize)
		} else {
			rows, err = runTUI(ctx, client, dir, digests, keyword, batchSize)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		out := extractOut
		if out == "" {
			out = defaultOutPath(path, keyword)
		}
		if err := appendResults(table, rows, keyword); err != nil {
			return err
		}
		if err := tabfile.Write(out, table); err != nil {
			return err
		}

		printSummary(rows, keyword, out)

		// Remember the keyword for next time.
		if cfg.Keyword != keyword {
			cfg.Keyword = keyword
			if err := cfg.Save(); err != nil && verbose {
				fmt.Println(ui.Warn("could not persist config: " + err.Error()))
			}
		}
		return nil
	},
}

// runPlain processes sequentially, printing one line per row.
func runPlain(ctx context.Context, client *sui.Client, dir *sui.Directory, digests []string, keyword string, batchSize int) ([]extract.Row, error) {
	total := len(digests)
	runner := extract.NewRunner(client, dir,
		extract.WithBatchSize(batchSize),
		extract.WithRowFunc(func(row extract.Row) {
			amount := "—"
			if row.HasAmount {
				amount = row.Amount.String()
			}
			icon := ui.Meta("·")
			if row.Matched {
				icon = ui.Success("")
			}
			fmt.Printf("%s [%d/%d] %s %12s  %s\n",
				icon, row.Index+1, total, ui.Addr(ui.TruncateDigest(row.Digest)), ui.Val(amount), ui.Meta(row.Note))
		}),
	)
	return runner.Run(ctx, digests, keyword)
}

// runTUI streams rows into the Bubble Tea extraction view.
func runTUI(ctx context.Context, client *sui.Client, dir *sui.Directory, digests []string, keyword string, batchSize int) ([]extract.Row, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.ExtractModel{
		Keyword: keyword,
		Total:   len(digests),
		Cancel:  cancel,
	}
	program := tea.NewProgram(model)

	var (
		rows   []extract.Row
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		runner := extract.NewRunner(client, dir,
			extract.WithBatchSize(batchSize),
			extract.WithRowFunc(func(row extract.Row) {
				amount := ""
				if row.HasAmount {
					amount = row.Amount.String()
				}
				program.Send(ui.ExtractRowMsg{
					Index:   row.Index,
					Digest:  row.Digest,
					Amount:  amount,
					Note:    row.Note,
					Matched: row.Matched,
				})
			}),
		)
		rows, runErr = runner.Run(runCtx, digests, keyword)
		program.Send(ui.ExtractDoneMsg{Err: runErr})
	}()

	_, viewErr := program.Run()
	// If the view died early (or the user force-quit), stop the runner and
	// wait for it so rows is complete and safe to read.
	cancel()
	<-done
	if viewErr != nil {
		return rows, fmt.Errorf("progress view: %w", viewErr)
	}
	return rows, runErr
}

// appendResults adds the three result columns to the input table.
func appendResults(table *tabfile.Table, rows []extract.Row, keyword string) error {
	amounts := make([]string, len(rows))
	notes := make([]string, len(rows))
	timestamps := make([]string, len(rows))
	for i, row := range rows {
		if row.HasAmount {
			amounts[i] = row.Amount.String()
		} else {
			amounts[i] = "Not Found"
		}
		notes[i] = row.Note
		timestamps[i] = row.Timestamp
	}
	return table.Append(
		[]string{fmt.Sprintf("Amount to '%s' (SUI)", keyword), "Notes", "Timestamp (UTC)"},
		[][]string{amounts, notes, timestamps},
	)
}

func printSummary(rows []extract.Row, keyword, out string) {
	var matched, failed, skipped int
	for _, row := range rows {
		switch {
		case row.Matched:
			matched++
		case row.Note == extract.NoteBatchError:
			failed++
		case row.Note == extract.NoteSkipped:
			skipped++
		}
	}

	pairs := [][2]string{
		{"Rows", fmt.Sprintf("%d", len(rows))},
		{"Matched", fmt.Sprintf("%d", matched)},
		{"Network errors", fmt.Sprintf("%d", failed)},
	}
	if skipped > 0 {
		pairs = append(pairs, [2]string{"Skipped", fmt.Sprintf("%d", skipped)})
	}
	pairs = append(pairs, [2]string{"Output", out})
	fmt.Println(ui.KeyValueBlock(fmt.Sprintf("Extraction complete — '%s'", keyword), pairs))
}

// defaultOutPath mirrors the input name: data.csv → data_Nansen_results.csv.
func defaultOutPath(in, keyword string) string {
	base := strings.TrimSuffix(in, ".csv")
	return fmt.Sprintf("%s_%s_results.csv", base, keyword)
}

func init() {
	extractCmd.Flags().StringVar(&extractColumn, "column", "", "digest column name (default: first column)")
	extractCmd.Flags().StringVarP(&extractKeyword, "keyword", "k", "", "search keyword, e.g. Nansen (default: last used)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "output CSV path")
	extractCmd.Flags().IntVar(&extractBatch, "batch-size", 0, "digests per multi-get call (default: config)")
	extractCmd.Flags().BoolVar(&extractNoTUI, "no-tui", false, "plain line-by-line progress instead of the live view")
}
