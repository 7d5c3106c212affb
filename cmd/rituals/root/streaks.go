package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newStreaksCmd() *cobra.Command {
	var user string
	var date string

	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Show recent streak history",
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
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Streaks"))
			fmt.Fprintln(out, ui.LabelValue("Current", stats.CurrentStreak))
			fmt.Fprintln(out, ui.LabelValue("Longest", stats.LongestStreak))
			fmt.Fprintln(out, "")

			if len(stats.RecentStreaks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no multi-day streaks yet)"))
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render("Recent runs"))
			for _, run := range stats.RecentStreaks {
				fmt.Fprintf(out, "- %s → %s (%d days)\n", run.StartDate, run.EndDate, run.Length)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD, default today)")

	return cmd
}
