package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"reciteflow-backend/internal/scheduler"
	"reciteflow-backend/internal/temporal"
)

var (
	schedulerURL   string
	schedulerToken string
)

var rootCmd = &cobra.Command{
	Use:   "recite",
	Short: "A spaced repetition tool for memorization practice",
	Long: `Recite is a CLI client for the scheduling service. It runs review
sessions, shows the memorization schedule, and reports streak stats
without going through the web frontend.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schedulerURL, "scheduler-url", envOrDefault("SCHEDULER_URL", "http://localhost:9000"), "Scheduling service base URL")
	rootCmd.PersistentFlags().StringVar(&schedulerToken, "token", os.Getenv("SCHEDULER_TOKEN"), "Scheduling service bearer token")
}

func newService() scheduler.Service {
	return scheduler.NewClient(schedulerURL, schedulerToken)
}

func today() string {
	return temporal.DayKey(time.Now())
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
