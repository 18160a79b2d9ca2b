package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangastats/pkg/data"
	"github.com/kerbaras/mangastats/pkg/sources"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the manga library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all manga in your library",
	Long:  "Display all manga in your library with their categories and downloaded chapters",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		controller := openController()
		defer controller.Close()

		repo := controller.Repository()
		mangas, err := repo.ListMangas(ctx)
		cobra.CheckErr(err)

		if len(mangas) == 0 {
			fmt.Println("📚 No manga in library. Use 'mangastats library add' to add one.")
			return
		}

		categories, err := repo.GetCategories(ctx)
		cobra.CheckErr(err)
		names := make(map[int64]string, len(categories))
		for _, c := range categories {
			names[c.ID] = c.Name
		}
		library, err := repo.GetLibraryManga(ctx)
		cobra.CheckErr(err)
		filed := make(map[int64][]string)
		for _, l := range library {
			filed[l.ID()] = append(filed[l.ID()], names[l.Category])
		}

		columns := []table.Column{
			{Title: "ID", Width: 20},
			{Title: "Name", Width: 40},
			{Title: "Source", Width: 14},
			{Title: "Categories", Width: 20},
			{Title: "Downloaded", Width: 12},
		}

		rows := []table.Row{}
		for _, manga := range mangas {
			source := controller.Sources().GetOrStub(manga.SourceID)
			rows = append(rows, table.Row{
				strconv.FormatInt(manga.ID, 10),
				truncateString(manga.Title, 38),
				truncateString(source.Name(), 12),
				truncateString(strings.Join(filed[manga.ID], ", "), 18),
				fmt.Sprintf("%d", controller.Downloads().DownloadCount(*manga, source)),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n📚 Library (%d manga)\n\n", len(mangas))
		fmt.Println(t.View())
	},
}

var libraryAddCmd = &cobra.Command{
	Use:   "add <manga-id> <title>",
	Short: "Add a manga to the library",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		cobra.CheckErr(err)
		sourceID, _ := cmd.Flags().GetInt64("source")
		categoryIDs, _ := cmd.Flags().GetInt64Slice("category")

		controller := openController()
		defer controller.Close()

		manga := data.Manga{ID: id, Title: args[1], SourceID: sourceID}
		cobra.CheckErr(controller.AddToLibrary(context.Background(), manga, categoryIDs))

		source := controller.Sources().GetOrStub(sourceID)
		fmt.Printf("✓ Added %s (%s)\n", manga.Title, source.Name())
		if dir, ok := controller.Downloads().FindMangaDir(manga, source); ok {
			fmt.Printf("  Downloads: %s\n", dir)
		}
	},
}

var libraryCategoryCmd = &cobra.Command{
	Use:   "category <category-id> <name>",
	Short: "Create or rename a category",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		cobra.CheckErr(err)
		order, _ := cmd.Flags().GetInt("order")

		controller := openController()
		defer controller.Close()

		category := data.Category{ID: id, Name: args[1], Order: order}
		cobra.CheckErr(controller.Repository().SaveCategory(context.Background(), &category))
		fmt.Printf("✓ Saved category %q\n", category.Name)
	},
}

func init() {
	libraryAddCmd.Flags().Int64("source", sources.MangaDexSourceID, "Source id the manga comes from")
	libraryAddCmd.Flags().Int64Slice("category", nil, "Category ids to file the manga under")
	libraryCategoryCmd.Flags().Int("order", 0, "Position of the category")

	libraryCmd.AddCommand(libraryListCmd, libraryAddCmd, libraryCategoryCmd)
	rootCmd.AddCommand(libraryCmd)
}
