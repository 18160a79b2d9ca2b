package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <manga-id>...",
	Short: "Delete downloaded chapters",
	Long:  "Remove the download folders of the given manga and record the freed space in the ledger",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			cobra.CheckErr(err)
			ids = append(ids, id)
		}

		controller := openController()
		defer controller.Close()

		ctx := context.Background()
		for _, id := range ids {
			deleted, err := controller.DeleteManga(ctx, id)
			if err != nil {
				slog.Error("Delete failed", "manga", id, "error", err)
				fmt.Printf("✗ %d: %v\n", id, err)
				continue
			}
			if !deleted {
				fmt.Printf("· %d: nothing downloaded\n", id)
				continue
			}
			fmt.Printf("✓ %d: deleted\n", id)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
