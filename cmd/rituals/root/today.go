package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ritualloop/internal/engine"
	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var user string
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the rituals due today",
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

			res, err := svc.Today(ctx, user, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRitual, "Today — "+res.Date))

			if res.GlobalRitual == nil && len(res.PersonalizedRituals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(nothing due today)"))
				return nil
			}

			if g := res.GlobalRitual; g != nil {
				fmt.Fprintln(out, ui.H2.Render(ui.IconGlobe+" Global ritual"))
				printDueRitual(cmd, *g)
			}
			if len(res.PersonalizedRituals) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconSparkle+" Your rituals"))
				for _, r := range res.PersonalizedRituals {
					printDueRitual(cmd, r)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD, default today)")

	return cmd
}

func printDueRitual(cmd *cobra.Command, r engine.DueRitual) {
	tags := ""
	if len(r.Tags) > 0 {
		tags = ui.Muted.Render(" #" + strings.Join(r.Tags, " #"))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "- %s %s%s [%s] %s\n",
		ui.ScopeIcon(string(r.Scope)), r.ID, tags, r.Effort, ui.CompletedText(r.Completed))
}
