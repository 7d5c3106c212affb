package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ritualloop/internal/engine"
	"ritualloop/internal/storage"
	"ritualloop/internal/ui"
)

func newAddCmd() *cobra.Command {
	var user string
	var tags []string
	var effort string
	var frequency string
	var scope string

	cmd := &cobra.Command{
		Use:   "add <ritual-id>",
		Short: "Add a ritual definition",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
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

			in := engine.AddRitualInput{
				ID:        args[0],
				Tags:      tags,
				Effort:    engine.EffortLevel(effort),
				Frequency: frequency,
				Scope:     engine.RitualScope(scope),
			}
			if in.Scope != engine.ScopeGlobal {
				in.OwnerID = &user
			}

			id, err := svc.AddRitual(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPlus+" Added ritual "+id))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", storage.MainUserKey, "Owning user (non-global scopes)")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Category tags")
	cmd.Flags().StringVarP(&effort, "effort", "e", "medium", "Effort level (tiny|medium|deep)")
	cmd.Flags().StringVarP(&frequency, "freq", "f", "daily", "Frequency rule (daily|every:N|weekdays:mon,wed|monthday:N)")
	cmd.Flags().StringVarP(&scope, "scope", "s", "custom", "Ritual scope (global|personalized|custom)")

	return cmd
}
