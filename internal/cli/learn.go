package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reciteflow-backend/internal/learn"
)

var learnCmd = &cobra.Command{
	Use:   "learn [segment-id]",
	Short: "Work on a memorization segment",
	Long: `Open a memorization session. With a segment id, work on that
segment; without one, the earliest segment planned on or before today is
picked. Completing the segment seeds its review schedule.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var segmentID int64
		if len(args) > 0 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				color.Red("❌ Invalid segment id %q", args[0])
				return
			}
			segmentID = id
		}

		session := learn.NewSession(newService())
		ctx := context.Background()

		if err := session.Load(ctx, segmentID, today()); err != nil {
			color.Red("❌ Failed to load segment: %v", err)
			return
		}

		snap := session.Snapshot()
		if snap.State == learn.StateNotFound {
			color.Green("✅ Nothing planned for today!")
			return
		}

		fmt.Println("\n========================================")
		fmt.Printf("Segment %d (%s), planned %s\n", snap.Segment.ID, snap.Segment.PagesLabel(), snap.Segment.PlannedDate)
		fmt.Println("========================================")
		for _, unit := range snap.Content {
			fmt.Printf("%3d  %s\n", unit.NumberInUnit, unit.Text)
		}
		if len(snap.Content) == 0 {
			color.Yellow("⚠️ Segment content is empty; completion is disabled.")
			return
		}

		fmt.Print("\nMark this segment memorized? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			fmt.Println("Left pending.")
			return
		}

		if err := session.Complete(ctx); err != nil {
			color.Red("❌ Failed to complete segment: %v", err)
			return
		}
		color.Green("✅ Segment memorized! Review schedule initialized.")
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
}
