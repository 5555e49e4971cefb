package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Olyastel/Site-parsing/internal/config"
	"github.com/Olyastel/Site-parsing/internal/database"
	"github.com/Olyastel/Site-parsing/internal/model"
	"github.com/Olyastel/Site-parsing/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Write an archived run as a JSON document",
		Long: `Export writes the directory of an archived run in the same JSON format
as 'courtscan crawl'. Without a run id the latest complete run is exported.

Examples:
  # Export the latest complete run
  courtscan export -o judges_data.json

  # Export run 3, partial or not
  courtscan export 3 -o run3.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().String("archive-dir", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().StringP("output", "o", "",
		"JSON output file (default: judges_data.json in the XDG data directory)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = filepath.Join(config.XDGDataDir(), config.DefaultOutputFile)
	}

	archive, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer archive.Close()

	var run *model.Run
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		run, err = archive.GetRun(cmd.Context(), id)
		if err != nil {
			return err
		}
	} else {
		run, err = archive.LatestRun(cmd.Context())
		if errors.Is(err, database.ErrRunNotFound) {
			return errors.New("no complete run in the archive")
		}
		if err != nil {
			return err
		}
	}

	if err := report.WriteJSONFile(output, run.Directory); err != nil {
		return err
	}

	stats := run.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "Exported run %d (%d sections, %d subsections, %d judges) to %s\n",
		run.ID, stats.Sections, stats.Subsections, stats.Judges, output)
	return nil
}
