package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/blackdede/carbura/internal/adapter/xmlsource"
	"github.com/blackdede/carbura/internal/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dataset.xml]",
	Short: "Parse and assemble a dataset without emitting, reporting drops",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Input.Path
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("a dataset path is required (argument or input.path)")
		}

		source := xmlsource.NewFileSource(path, logger, cfg.Input.MaxStations)
		records, err := source.ReadAll(cmd.Context())
		if err != nil {
			return err
		}

		// No lookups here; validation only exercises parsing and assembly.
		_, report := domain.AssembleAll(records, nil)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "records read:      %d\n", report.Input)
		fmt.Fprintf(out, "stations retained: %d\n", report.Retained)
		fmt.Fprintf(out, "stations dropped:  %d\n", report.Input-report.Retained)

		reasons := make([]string, 0, len(report.Dropped))
		for reason := range report.Dropped {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(out, "  %-20s %d\n", reason, report.Dropped[domain.DropReason(reason)])
		}
		return nil
	},
}
