package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangastats/pkg/chart"
	"github.com/kerbaras/mangastats/pkg/stats"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Plot storage usage over time",
	Long:  "Replay the ledger into a storage graph, in the terminal or as a PNG image",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		groupFlag, _ := cmd.Flags().GetString("group")
		pngFile, _ := cmd.Flags().GetString("png")
		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")
		mangaID, _ := cmd.Flags().GetInt64("manga")

		mode, err := stats.ParseGraphGroupMode(groupFlag)
		cobra.CheckErr(err)

		controller := openController()
		defer controller.Close()

		model := controller.Stats()
		cobra.CheckErr(model.Load(context.Background()))

		points := model.Series(mode)
		if cmd.Flags().Changed("manga") {
			entry, ok := findEntry(model.State(), mangaID)
			if !ok {
				cobra.CheckErr(fmt.Errorf("manga %d has no downloads", mangaID))
			}
			points = model.EntrySeries(entry, mode)
		}

		if pngFile == "" {
			fmt.Println(chart.RenderLine(points, width, height, -1, lipgloss.Color("99")))
			return
		}

		f, err := os.Create(pngFile)
		cobra.CheckErr(err)
		defer f.Close()
		cobra.CheckErr(chart.WritePNG(f, points, width*10, height*20))
		fmt.Printf("✓ Wrote %s (%d points)\n", pngFile, len(points))
	},
}

func init() {
	graphCmd.Flags().StringP("group", "g", "day", "Bucket operations by: none|day|month")
	graphCmd.Flags().String("png", "", "Write the graph to a PNG file instead of the terminal")
	graphCmd.Flags().Int("width", 72, "Graph width in terminal cells")
	graphCmd.Flags().Int("height", 16, "Graph height in terminal rows")
	graphCmd.Flags().Int64("manga", 0, "Only plot this manga id")
	rootCmd.AddCommand(graphCmd)
}

func findEntry(s stats.State, mangaID int64) (stats.Entry, bool) {
	for _, e := range s.Items {
		if e.MangaID() == mangaID {
			return e, true
		}
	}
	return stats.Entry{}, false
}
