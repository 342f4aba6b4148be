package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"ppvcheck/database"
	"ppvcheck/internal/config"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent validation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			runs, err := database.NewRunsDB(cfg.HistoryDBPath)
			if err != nil {
				return err
			}
			defer runs.Close()

			recent, err := runs.RecentRuns(limit)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				fmt.Println("No validation runs recorded yet.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Started", "Event", "Year", "Tier", "Billing Id", "Rows", "Matched", "Tags", "Output"})
			for _, run := range recent {
				if len(run.Tiers) == 0 {
					t.AppendRow(table.Row{
						run.StartedAt.Format("2006-01-02 15:04"), run.EventName, run.Year,
						"", "", "", "", "", run.OutputPath,
					})
				}
				for i, tier := range run.Tiers {
					row := table.Row{"", "", "", tier.Tier, tier.BillingID, tier.Extracted, tier.Matched, tier.TagsFound, ""}
					if i == 0 {
						row[0] = run.StartedAt.Format("2006-01-02 15:04")
						row[1] = run.EventName
						row[2] = run.Year
						row[8] = run.OutputPath
					}
					t.AppendRow(row)
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "How many runs to show")
	return cmd
}
