package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskdash/internal/api"
	"taskdash/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportSearch string
)

var exportCmd = &cobra.Command{
	Use:   "export [tasks|activities]",
	Short: "Export the full task table or activity feed to CSV or XLSX",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default <entity>_<date>.<format>)")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Only export rows matching this search term")
}

func runExport(cmd *cobra.Command, args []string) error {
	entity := args[0]
	if entity != "tasks" && entity != "activities" {
		return fmt.Errorf("unknown entity %q, expected tasks or activities", entity)
	}
	if exportFormat != "csv" && exportFormat != "xlsx" {
		return fmt.Errorf("unknown format %q, expected csv or xlsx", exportFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if demoMode {
		shutdown, err := startDemo(&cfg)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	client := api.NewClient(cfg.Endpoint, cfg.Token, cfg.RequestTimeout())
	ctx := context.Background()

	out := exportOut
	if out == "" {
		out = export.DefaultFileName(entity, exportFormat)
	}

	var count int
	switch entity {
	case "tasks":
		tasks, err := export.FetchAllTasks(ctx, client, exportSearch)
		if err != nil {
			return fmt.Errorf("failed to fetch tasks: %w", err)
		}
		count = len(tasks)
		if exportFormat == "csv" {
			err = export.TasksCSV(out, tasks)
		} else {
			err = export.TasksXLSX(out, tasks)
		}
		if err != nil {
			return err
		}
	case "activities":
		activities, err := export.FetchAllActivities(ctx, client, exportSearch)
		if err != nil {
			return fmt.Errorf("failed to fetch activities: %w", err)
		}
		count = len(activities)
		if exportFormat == "csv" {
			err = export.ActivitiesCSV(out, activities)
		} else {
			err = export.ActivitiesXLSX(out, activities)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", count, entity, out)
	return nil
}
