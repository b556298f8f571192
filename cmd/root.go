package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bloomquiz",
	Short: "Learning assessment in the terminal",
	Long: "BloomQuiz: take short quizzes scored by the assessment service and see\n" +
		"how you do at remembering, understanding and applying.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BLOOMQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "Assessment service base URL (overrides BLOOMQUIZ_API_URL env var)")

	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(callsCmd)
	rootCmd.AddCommand(versionCmd)
}
