package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

func validateFormat(format string) error {
	if format != FormatTable && format != FormatJSON {
		return newUsageError("unknown format %q, expected %q or %q", format, FormatTable, FormatJSON)
	}
	return nil
}

type scoreRow struct {
	Attribute string  `json:"attribute"`
	Score     float64 `json:"score"`
	Type      string  `json:"type"`
}

type analysisOutput struct {
	Scores []scoreRow `json:"scores"`
	Max    *scoreRow  `json:"max,omitempty"`
}

func toRows(result perspective.AnalysisResult) []scoreRow {
	return lo.Map(result.Types(), func(t perspective.AttributeType, _ int) scoreRow {
		s := result[t].Summary
		return scoreRow{Attribute: t.String(), Score: s.Value, Type: s.Type.String()}
	})
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}

func renderAnalysis(w io.Writer, format string, result perspective.AnalysisResult) error {
	rows := toRows(result)

	if format == FormatJSON {
		out := analysisOutput{Scores: rows}
		if attr, value, ok := result.Max(); ok {
			out.Max = &scoreRow{Attribute: attr.String(), Score: value, Type: result[attr].Summary.Type.String()}
		}
		return writeJSON(w, out)
	}

	table := newTable(w, []string{"Attribute", "Score", "Type"})
	for _, row := range rows {
		table.Append([]string{row.Attribute, strconv.FormatFloat(row.Score, 'f', 4, 64), row.Type})
	}
	table.Render()
	return nil
}

func renderAttributes(w io.Writer, format string, attrs []perspective.AttributeType) error {
	tokens := lo.Map(attrs, func(t perspective.AttributeType, _ int) string {
		return t.String()
	})

	if format == FormatJSON {
		return writeJSON(w, tokens)
	}

	table := newTable(w, []string{"Attribute"})
	for _, token := range tokens {
		table.Append([]string{token})
	}
	table.Render()
	return nil
}
