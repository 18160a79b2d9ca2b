package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/stats"
	"github.com/spf13/cobra"
)

const deletedEntry = "entry was deleted"

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Show the download ledger",
	Long:  "List every recorded download and deletion in chronological order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mangaID, _ := cmd.Flags().GetInt64("manga")
		ctx := context.Background()

		controller := openController()
		defer controller.Close()

		model := controller.Stats()
		cobra.CheckErr(model.Load(ctx))

		s := model.State()
		ops := s.Operations
		if cmd.Flags().Changed("manga") {
			ops = s.OperationsFor(mangaID)
		}
		if len(ops) == 0 {
			fmt.Println("📭 No operations recorded")
			return
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.SetStyle(table.StyleRounded)
		tw.Style().Options.SeparateRows = false
		tw.AppendHeader(table.Row{"#", "Date", "Manga", "Chapters", "Size"})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 40},
			{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
			{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
		})

		titles := make(map[int64]string)
		for _, op := range stats.Chronological(ops) {
			tw.AppendRow(table.Row{
				op.ID,
				model.Labels.Operation(op.Time()),
				mangaTitle(ctx, model, op, titles),
				fmt.Sprintf("%+d", op.Units),
				signedBytes(op.Size),
			})
		}

		totals := stats.ComputeLedgerTotals(ops)
		tw.AppendFooter(table.Row{"", "", "downloaded",
			fmt.Sprintf("%d", totals.DownloadedChapters), humanize.Bytes(uint64(totals.DownloadedSize))})
		tw.AppendFooter(table.Row{"", "", "deleted",
			fmt.Sprintf("%d", totals.DeletedChapters), humanize.Bytes(uint64(totals.DeletedSize))})
		tw.Render()
	},
}

func init() {
	opsCmd.Flags().Int64("manga", 0, "Only show operations of this manga id")
	rootCmd.AddCommand(opsCmd)
}

type mangaFinder interface {
	FindManga(ctx context.Context, id *int64) (*data.Manga, error)
}

func mangaTitle(ctx context.Context, finder mangaFinder, op data.DownloadStatOperation, cache map[int64]string) string {
	if op.MangaID == nil {
		return deletedEntry
	}
	if title, ok := cache[*op.MangaID]; ok {
		return title
	}
	title := deletedEntry
	manga, err := finder.FindManga(ctx, op.MangaID)
	if err != nil {
		return fmt.Sprintf("manga %d (%v)", *op.MangaID, err)
	}
	if manga != nil {
		title = truncateString(manga.Title, 40)
	}
	cache[*op.MangaID] = title
	return title
}

func signedBytes(size int64) string {
	if size < 0 {
		return "-" + humanize.Bytes(uint64(-size))
	}
	return "+" + humanize.Bytes(uint64(size))
}
