package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newStatsCmd() *cobra.Command {
	var user string
	var date string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show engagement statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := resolveDay(date)
			if err != nil {
				return err
			}

			stats, err := svc.Stats(ctx, user, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Ritual Stats"))
			fmt.Fprintln(out, ui.LabelValue("Current streak", fmt.Sprintf("%s %d", ui.IconFlame, stats.CurrentStreak)))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", stats.LongestStreak))
			fmt.Fprintln(out, ui.LabelValue("Total completions", stats.TotalCompletions))
			fmt.Fprintln(out, ui.LabelValue("Last 7 days", stats.CompletedLast7))
			fmt.Fprintln(out, ui.LabelValue("Last 30 days", stats.CompletedLast30))
			fmt.Fprintln(out, ui.LabelValue("Active days", stats.CompletedDays))
			fmt.Fprintln(out, ui.LabelValue("Avg per active day", fmt.Sprintf("%.2f", stats.AvgPerActiveDay)))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%.1f%%", stats.CompletionRate)))
			fmt.Fprintln(out, ui.LabelValue("Trend", ui.TrendText(string(stats.Trend))))
			if stats.BestDay != "" {
				fmt.Fprintln(out, ui.LabelValue("Best day", stats.BestDay))
			}
			fmt.Fprintln(out, ui.LabelValue("Shared / quiet", fmt.Sprintf("%d / %d", stats.SharedCount, stats.QuietCount)))
			if len(stats.TopTags) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Top tags", "#"+strings.Join(stats.TopTags, " #")))
			}

			var achieved []string
			for _, m := range stats.Milestones {
				if m.Achieved {
					achieved = append(achieved, m.Label())
				}
			}
			if len(achieved) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Milestones"))
				for _, label := range achieved {
					fmt.Fprintf(out, "- %s\n", label)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD, default today)")

	return cmd
}
