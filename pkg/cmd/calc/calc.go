// Package calc provides the command line access to the calculation engine.
package calc

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/race-engineer-service-go/pkg/config"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func NewCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "evaluates race engineering formulas",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch config.OutputFormat {
			case outputTable, outputJSON:
				return nil
			default:
				return fmt.Errorf("unknown output format %q", config.OutputFormat)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&config.OutputFormat,
		"output",
		"o",
		outputTable,
		"output format (table, json)")

	cmd.AddCommand(
		newStintsCmd(),
		newTiresCmd(),
		newLapTimeCmd(),
		newTireWearCmd(),
		newRaceTimeCmd(),
		newBalanceCmd(),
		newFormatCmd(),
	)
	return cmd
}

// row is a single line of the result table
type row struct {
	name  string
	value any
}

// render writes rows as table. For json output data is encoded instead.
func render(w io.Writer, data any, rows []row) error {
	if config.OutputFormat == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Name", "Value"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.name, r.value})
	}
	t.Render()
	return nil
}
