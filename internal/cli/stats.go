package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reciteflow-backend/internal/analytics"
	"reciteflow-backend/internal/temporal"
)

var statsMonths int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, activity, and weekly progress",
	Run: func(cmd *cobra.Command, args []string) {
		svc := newService()
		ctx := context.Background()
		day := today()

		since := temporal.AddDays(day, -(analytics.StreakLookbackCap + 1))
		events, err := svc.FetchReviewEvents(ctx, since)
		if err != nil {
			color.Red("❌ Failed to load review events: %v", err)
			return
		}

		fmt.Println("\n📊 Practice Stats")
		fmt.Println("=================")
		streak := analytics.Streak(events, day)
		if streak > 0 {
			fmt.Printf("🔥 Current streak: %d day(s)\n", streak)
		} else {
			fmt.Println("No review yet today. The streak starts with one session.")
		}

		days := analytics.Heatmap(events, statsMonths, time.Now())
		active := 0
		for _, d := range days {
			if d.Count > 0 {
				active++
			}
		}
		fmt.Printf("Active days (last %d months): %d of %d\n", statsMonths, active, len(days))

		completed, err := svc.FetchCompletedSegments(ctx)
		if err != nil {
			color.Red("❌ Failed to load completed segments: %v", err)
			return
		}
		weeks := analytics.WeeklySegments(completed)
		if len(weeks) == 0 {
			fmt.Println("\nNo segments completed yet.")
			return
		}

		fmt.Println("\n📈 Segments per Week")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Week\tCount")
		fmt.Fprintln(w, "----\t-----")
		for _, wk := range weeks {
			fmt.Fprintf(w, "%s\t%d\t%s\n", wk.Week, wk.Count, strings.Repeat("█", wk.Count))
		}
		w.Flush()
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVarP(&statsMonths, "months", "m", 6, "Heatmap window in months")
}
