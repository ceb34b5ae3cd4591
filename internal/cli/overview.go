package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reciteflow-backend/internal/schedule"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the memorization schedule",
	Run: func(cmd *cobra.Command, args []string) {
		assembler := schedule.NewAssembler(newService())
		overview, err := assembler.Build(context.Background(), today())
		if err != nil {
			color.Red("❌ Failed to load schedule: %v", err)
			return
		}

		if overview.Counts.Total == 0 {
			color.Green("✅ No pending segments. All caught up!")
			return
		}

		fmt.Println("\n📅 Schedule Overview")
		fmt.Println("====================")
		fmt.Printf("Late: %d  Today: %d  Upcoming: %d  Total: %d\n\n",
			overview.Counts.Late, overview.Counts.Today, overview.Counts.Next, overview.Counts.Total)

		if overview.Priority != nil {
			color.New(color.Bold).Printf("Next up: segment %d (%s) — %s\n\n",
				overview.Priority.ID, overview.Priority.PagesLabel(), overview.Priority.Label)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Segment\tPages\tPlanned\tStatus")
		fmt.Fprintln(w, "-------\t-----\t-------\t------")
		for _, seg := range overview.Segments {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", seg.ID, seg.PagesLabel(), seg.PlannedDate, statusText(seg.Status))
		}
		w.Flush()
		fmt.Println()
	},
}

func statusText(s schedule.Status) string {
	switch s {
	case schedule.StatusLate:
		return color.RedString("late")
	case schedule.StatusToday:
		return color.YellowString("today")
	default:
		return color.GreenString("upcoming")
	}
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}
