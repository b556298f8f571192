package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/dashboard"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz attempts of the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.store.SessionRepo().Load(ctx)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if !sess.Active() {
			noteColor.Fprintln(w, "Not logged in.")
			return nil
		}

		attempts, err := d.store.AttemptRepo().ListByUser(ctx, sess.Username, limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(w, "No attempts recorded yet.")
			return nil
		}

		headingColor.Fprintf(w, "Attempts for %s\n", sess.Username)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "Submitted", "Qs", "Total", "Remember", "Understand", "Apply", "Avg Time (ms)"})
		for i, a := range attempts {
			table.Append([]string{
				fmt.Sprint(i + 1),
				a.SubmittedAt.Local().Format("2006-01-02 15:04"),
				fmt.Sprint(a.Questions),
				dashboard.Format1(a.TotalScore),
				dashboard.Format1(a.RememberingScore),
				dashboard.Format1(a.UnderstandingScore),
				dashboard.Format1(a.ApplyingScore),
				dashboard.Format1(a.AverageTimeMs),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of most recent attempts to show (0 = all)")
}
