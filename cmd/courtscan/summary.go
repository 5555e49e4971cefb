package main

import (
	"github.com/spf13/cobra"

	"github.com/Olyastel/Site-parsing/internal/model"
	"github.com/Olyastel/Site-parsing/internal/report"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print statistics of a judge directory JSON file",
		Long: `Summary reads a JSON document written by 'courtscan crawl' or
'courtscan export' and prints its section, subsection and judge counts.

Examples:
  courtscan summary judges_data.json
  courtscan summary --breakdown judges_data.json`,
		Args: cobra.ExactArgs(1),
		RunE: runSummaryCmd,
	}

	cmd.Flags().Bool("breakdown", false, "Print per-section counts")

	return cmd
}

// runSummaryCmd executes the summary command.
func runSummaryCmd(cmd *cobra.Command, args []string) error {
	perSection, err := cmd.Flags().GetBool("breakdown")
	if err != nil {
		return err
	}

	dir, err := report.ReadJSONFile(args[0])
	if err != nil {
		return err
	}

	run := model.NewRun("")
	run.Directory = dir
	run.OutputPath = args[0]

	_, err = report.NewSummaryWriter(cmd.OutOrStdout(), report.WithSectionBreakdown(perSection)).Write(run)
	return err
}
