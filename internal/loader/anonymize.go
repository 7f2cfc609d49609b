package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Anonymize projects a raw student CSV down to the required columns only,
// dropping names and any other identifying extras. Rows keep their order.
func Anonymize(r io.Reader, w io.Writer) error {
	t, err := ReadTable(r)
	if err != nil {
		return err
	}
	keep := RequiredColumns()
	for _, col := range keep {
		if !t.HasColumn(col) {
			return fmt.Errorf("anonymize: input is missing required column %s", col)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(keep); err != nil {
		return fmt.Errorf("anonymize: %w", err)
	}
	record := make([]string, len(keep))
	for row := range t.Rows {
		for i, col := range keep {
			record[i], _ = t.Cell(row, col)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("anonymize: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AnonymizeFile is the file-path convenience wrapper around Anonymize.
func AnonymizeFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("anonymize: %w", err)
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("anonymize: %w", err)
	}
	if err := Anonymize(in, out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
