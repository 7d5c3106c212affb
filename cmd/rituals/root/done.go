package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"

	"ritualloop/internal/engine"
	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var user string
	var date string
	var quiet bool
	var artifact string
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "done <ritual-id>",
		Short: "Log a ritual completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("ritual id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.LogCompletionInput{
				UserID:   user,
				RitualID: strings.TrimSpace(args[0]),
				At:       time.Now(),
				Quiet:    quiet,
			}
			if date != "" {
				day, err := resolveDay(date)
				if err != nil {
					return err
				}
				in.Day = engine.FormatDay(day)
			}
			if artifact != "" {
				in.ArtifactID = &artifact
			}

			res, err := svc.LogCompletion(ctx, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Logged "+in.RitualID+" for "+res.Day))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (longest %d)", ui.IconFlame, res.CurrentStreak, res.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Total completions", res.Total))

			for _, m := range res.Crossed {
				fmt.Fprintln(out, ui.IconTrophy+" "+ui.BadgeMilestone+" "+ui.Gold.Render(m.Label()))
			}
			if len(res.Crossed) > 0 && !noNotify {
				beeep.AppName = "Ritualloop"
				msg := res.Crossed[0].Label()
				if len(res.Crossed) > 1 {
					msg += fmt.Sprintf(" (+%d more)", len(res.Crossed)-1)
				}
				// Best effort; a headless box has no notifier.
				_ = beeep.Notify("Milestone reached", msg, "")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Calendar day for the completion (default today)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Complete quietly (not shared)")
	cmd.Flags().StringVar(&artifact, "artifact", "", "Shared artifact reference")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "Skip the desktop notification on milestones")

	return cmd
}
