package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Olyastel/Site-parsing/internal/config"
	"github.com/Olyastel/Site-parsing/internal/database"
	"github.com/Olyastel/Site-parsing/internal/report"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived crawl runs",
		Long: `History lists the runs stored by 'courtscan crawl --archive',
newest first, with their counts and whether they completed.

Examples:
  # Show the last 20 runs
  courtscan history

  # Show every run in a specific archive
  courtscan history --limit 0 --archive-dir ./archive`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("archive-dir", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	archive, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer archive.Close()

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	runs, err := archive.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs")
		return nil
	}

	report.WriteHistory(out, runs)
	return nil
}

// openArchive opens the existing archive named by the --archive-dir flag.
func openArchive(cmd *cobra.Command) (*database.Archive, error) {
	dir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	return database.Open(dir, opts)
}
