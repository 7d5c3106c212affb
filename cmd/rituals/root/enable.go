package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newEnableCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Turn rituals on for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(cmd, user, true)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	return cmd
}

func newDisableCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Turn rituals off for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setEnabled(cmd, user, false)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "User ID")
	return cmd
}

func setEnabled(cmd *cobra.Command, user string, enabled bool) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.SetEnabled(ctx, user, enabled); err != nil {
		return err
	}
	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s Rituals %s for %s", ui.IconDone, state, user)))
	return nil
}
