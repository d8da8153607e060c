package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rehearse",
	Short: "Practice difficult conversations with a simulated partner",
	Long:  "Rehearse runs roleplay practice sessions against a simulated conversation partner whose mood shifts with how you communicate. Single Go binary, local database.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
}
