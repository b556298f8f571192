package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/abhisek/bloomquiz/internal/dashboard"
	"github.com/abhisek/bloomquiz/internal/store"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Inspect recorded assessment service calls",
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent service calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		operation, _ := cmd.Flags().GetString("operation")
		failed, _ := cmd.Flags().GetBool("failed")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		events, err := d.store.EventRepo().QueryCalls(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			Operation: operation,
			Failed:    failed,
		})
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No calls recorded.")
			return nil
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Timestamp", "Operation", "User", "Status", "Ms", "OK", "Error"})
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			table.Append([]string{
				fmt.Sprint(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Operation,
				e.Username,
				fmt.Sprint(e.StatusCode),
				fmt.Sprint(e.LatencyMs),
				ok,
				truncate(e.ErrorMessage, 40),
			})
		}
		table.Render()
		return nil
	},
}

var callsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failures and latency per operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		stats, err := d.store.EventRepo().CallStats(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(w, "No calls recorded.")
			return nil
		}

		headingColor.Fprintln(w, "Calls by Operation")
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Operation", "Calls", "Failures", "Avg Ms", "Max Ms"})
		var calls, failures int
		for _, st := range stats {
			table.Append([]string{
				st.Operation,
				fmt.Sprint(st.Calls),
				fmt.Sprint(st.Failures),
				dashboard.Format1(st.AvgLatencyMs),
				fmt.Sprint(st.MaxLatencyMs),
			})
			calls += st.Calls
			failures += st.Failures
		}
		table.SetFooter([]string{"Total", fmt.Sprint(calls), fmt.Sprint(failures), "", ""})
		table.Render()
		return nil
	},
}

func init() {
	callsListCmd.Flags().Int("limit", 20, "Maximum number of calls to show")
	callsListCmd.Flags().String("operation", "", "Only show this operation (register, authenticate, fetch_questions, submit_answers)")
	callsListCmd.Flags().Bool("failed", false, "Only show failed calls")

	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsStatsCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
