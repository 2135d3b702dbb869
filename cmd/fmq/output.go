package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	fmxml "github.com/tphakala/go-fmxml"
)

// renderResult prints the decoded records as a table, with the server
// identifiers in the leading columns.
func renderResult(result *fmxml.Result) error {
	if len(result.Records) == 0 {
		pterm.Println("No records returned")
		return nil
	}

	header := []string{"RECORDID", "MODID"}
	for _, f := range result.Fields {
		header = append(header, f.Name)
	}

	rows := pterm.TableData{header}
	for _, rec := range result.Records {
		row := []string{strconv.Itoa(rec.RecordID), strconv.Itoa(rec.ModID)}
		for _, f := range result.Fields {
			row = append(row, formatCell(rec.Values[f.Name]))
		}
		rows = append(rows, row)
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Printf("%d record(s), database %q layout %q\n",
		len(result.Records), result.Database["NAME"], result.Database["LAYOUT"])

	return nil
}

// formatCell renders a decoded field value for table output.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		return pterm.Sprint(val)
	}
}

// renderInfo prints the product and database metadata of a response.
func renderInfo(result *fmxml.Result) {
	info := pterm.Sprintf("%s %s\nDatabase: %s (%s records)",
		result.Product["NAME"], result.Product["VERSION"],
		result.Database["NAME"], result.Database["RECORDS"])

	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Server")).
		WithPadding(1).
		Println(info)
}
