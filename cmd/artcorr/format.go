package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/artcorr/artcorr"
)

// CLIExport is the JSON envelope for the export command.
type CLIExport struct {
	Partition          string      `json:"partition"`
	Mode               string      `json:"mode"`
	SentenceCount      int         `json:"sentence_count"`
	CorrectedSentences int         `json:"corrected_sentences"`
	Features           [][]float64 `json:"features"`
	Labels             []int       `json:"labels,omitempty"`
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q (must be json or text)", format)
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputExport writes the export result in the selected format.
func outputExport(export CLIExport) error {
	if flagFormat == "json" {
		return outputJSON(export)
	}
	formatExportText(os.Stdout, export)
	return nil
}

// formatExportText formats an export as a metadata header followed by
// aligned feature rows.
func formatExportText(w io.Writer, export CLIExport) {
	fmt.Fprintf(w, "Partition: %s (%s)\n", export.Partition, export.Mode)
	fmt.Fprintf(w, "Sentences: %d (%d with corrections)\n", export.SentenceCount, export.CorrectedSentences)
	fmt.Fprintf(w, "Rows: %d\n\n", len(export.Features))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if export.Labels != nil {
		fmt.Fprintln(tw, "ROW\tDET\tNOUN\tDIST\tLABEL")
	} else {
		fmt.Fprintln(tw, "ROW\tDET\tNOUN\tDIST")
	}
	for i, row := range export.Features {
		if export.Labels != nil {
			fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.0f\t%d\n", i, row[0], row[1], row[2], export.Labels[i])
		} else {
			fmt.Fprintf(tw, "%d\t%.0f\t%.0f\t%.0f\n", i, row[0], row[1], row[2])
		}
	}
	tw.Flush()
}

// outputReport writes the decoded report in the selected format.
func outputReport(report artcorr.Report) error {
	if flagFormat == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}
	return formatReportText(os.Stdout, report)
}

// formatReportText formats suggested corrections as aligned columns,
// skipping no-suggestion slots.
func formatReportText(w io.Writer, report artcorr.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SENTENCE\tSITE\tARTICLE\tCONFIDENCE")
	for si, sentence := range report {
		for ti, slot := range sentence {
			if slot == nil {
				continue
			}
			name, err := artcorr.ClassName(slot.Class)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%d\t%d\t%s\t%.2f\n", si, ti, name, slot.Confidence)
		}
	}
	return tw.Flush()
}
