package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record <manga-id> <chapter-path>",
	Short: "Record a downloaded chapter",
	Long:  "Measure a chapter folder or archive and append it to the ledger as a download",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		cobra.CheckErr(err)

		controller := openController()
		defer controller.Close()

		op, err := controller.RecordDownload(context.Background(), id, args[1])
		cobra.CheckErr(err)
		fmt.Printf("✓ Recorded operation %d: %d chapter, %s\n", op.ID, op.Units, humanize.Bytes(uint64(op.Size)))
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
