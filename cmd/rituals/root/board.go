package root

import (
	"context"

	"github.com/spf13/cobra"

	"ritualloop/internal/storage"
	"ritualloop/internal/tui"
)

func newBoardCmd() *cobra.Command {
	var user string
	var date string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive board for today's rituals",
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

			return tui.RunBoard(ctx, svc, user, day, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	cmd.Flags().StringVar(&date, "date", "", "Calendar day (YYYY-MM-DD, default today)")

	return cmd
}
