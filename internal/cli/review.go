package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reciteflow-backend/internal/audio"
	"reciteflow-backend/internal/review"
)

var reviewQuiz bool

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session over today's due items",
	Long: `Start a review session. Items come from the scheduling service in
due order. Grade with 1/2/3 (hard/good/easy), or 1-5 plus s to skip in
quiz mode; press Enter on an empty line to reveal, p/r to pause and
resume, q to quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		mode := review.ModePlain
		if reviewQuiz {
			mode = review.ModeQuiz
		}

		device := audio.Acquire()
		defer device.Release()

		engine := review.NewEngine(newService(), device, review.Config{Mode: mode})
		ctx := context.Background()

		if err := engine.Load(ctx); err != nil {
			color.Red("❌ Failed to load due items: %v", err)
			return
		}

		snap := engine.Snapshot()
		if snap.State == review.StateEmpty {
			color.Green("✅ Nothing due for review today!")
			return
		}

		reader := bufio.NewReader(os.Stdin)
		for {
			snap = engine.Snapshot()
			if snap.State == review.StateEmpty {
				color.Green("\n🎉 Review session complete!")
				return
			}
			if snap.Current == nil {
				return
			}

			fmt.Println("\n========================================")
			fmt.Printf("Reviewing [%d/%d], due %s\n", snap.Done+1, snap.Total, snap.Current.DueDate)
			if snap.Revealed {
				fmt.Println(snap.Current.Content)
			} else {
				color.Yellow("(hidden — press Enter to reveal)")
			}
			fmt.Println("========================================")

			fmt.Print("> ")
			input, _ := reader.ReadString('\n')
			key := strings.TrimSpace(input)

			switch key {
			case "q":
				fmt.Println("Session ended.")
				return
			case "":
				engine.ToggleReveal()
				continue
			case "p":
				engine.Pause()
				continue
			case "r":
				engine.Resume()
				continue
			}

			handled, err := engine.HandleKey(ctx, key, false)
			if err != nil {
				color.Red("❌ %v", err)
				continue
			}
			if !handled {
				color.Yellow("⚠️ Unknown key %q", key)
				continue
			}
			color.Green("✅ Graded.")
		}
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().BoolVarP(&reviewQuiz, "quiz", "z", false, "Quiz mode: items start hidden, grade on the full 1-5 scale")
}
