package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ritualloop/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "rituals",
	Short:         "Ritualloop — local-first ritual tracker with streak analytics",
	Long:          "Ritualloop tracks recurring rituals, decides what is due each day and computes streak, trend and milestone analytics from your completion log.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newTodayCmd(),
		newStatsCmd(),
		newStreaksCmd(),
		newImportCmd(),
		newEnableCmd(),
		newDisableCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
