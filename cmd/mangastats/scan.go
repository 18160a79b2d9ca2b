package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/kerbaras/mangastats/pkg/stats"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Measure downloaded manga",
	Long:  "Scan the download folder and list every manga with its size and chapter count",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		sortFlag, _ := cmd.Flags().GetString("sort")
		groupFlag, _ := cmd.Flags().GetString("group")
		desc, _ := cmd.Flags().GetBool("desc")
		query, _ := cmd.Flags().GetString("search")
		all, _ := cmd.Flags().GetBool("all")

		sortMode, err := stats.ParseSortMode(sortFlag)
		cobra.CheckErr(err)
		groupMode, err := stats.ParseGroupMode(groupFlag)
		cobra.CheckErr(err)

		controller := openController()
		defer controller.Close()

		model := controller.Stats()
		cobra.CheckErr(model.Load(context.Background()))

		s := model.State()
		s.SortMode, s.GroupMode, s.Descending = sortMode, groupMode, desc
		s.SearchQuery = query
		s.ShowNotDownloaded = all

		visible := s.Visible()
		if len(visible) == 0 {
			fmt.Println("📭 No downloads found in", controller.DownloadDir())
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
			groupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Padding(0, 1)
		)

		var groupRows map[int]bool
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case groupRows[row]:
					return groupStyle
				default:
					return cellStyle
				}
			}).
			Headers("Title", "Source", "Category", "Chapters", "Size")

		addRow := func(e stats.Entry) {
			category := e.Category.Name
			if e.Category.IsSystem() {
				category = stats.DefaultCategoryName
			}
			t.Row(truncateString(e.Title(), 48), e.SourceName(), category,
				fmt.Sprintf("%d", e.ChapterCount), humanize.Bytes(uint64(e.FolderSize)))
		}

		if groupMode == stats.GroupNone {
			for _, e := range visible {
				addRow(e)
			}
		} else {
			groupRows = make(map[int]bool)
			row := 0
			for _, g := range s.Groups(stats.DefaultCategoryName) {
				groupRows[row] = true
				t.Row(g.Label, "", "", fmt.Sprintf("%d", g.Chapters), humanize.Bytes(uint64(g.Size)))
				row++
				for _, e := range g.Entries {
					addRow(e)
					row++
				}
			}
		}

		o := stats.ComputeOverview(s.Items)
		fmt.Printf("\n📊 %d manga · %d chapters · %s\n\n", o.MangaCount, o.TotalChapters, humanize.Bytes(uint64(o.TotalSize)))
		fmt.Println(t)
	},
}

func init() {
	scanCmd.Flags().String("sort", "title", "Sort by: title|size|chapters")
	scanCmd.Flags().String("group", "none", "Group by: none|category|source")
	scanCmd.Flags().Bool("desc", false, "Sort in descending order")
	scanCmd.Flags().String("search", "", "Only show manga whose title (or group) matches")
	scanCmd.Flags().Bool("all", false, "Include library manga without downloads")
	rootCmd.AddCommand(scanCmd)
}
