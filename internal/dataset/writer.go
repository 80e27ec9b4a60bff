package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"ratingsync/internal/fileutil"
	"ratingsync/internal/ratings"
)

// WriteCSV writes the full dataset to path with a header row. The file is
// written to a temp sibling and renamed so readers never see a partial file.
func WriteCSV(path string, items []ratings.Item) error {
	return fileutil.WriteAtomic(path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write(ratings.FieldNames()); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		for _, item := range items {
			if err := w.Write(item.Fields()); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flush csv: %w", err)
		}
		return nil
	})
}

// WriteJSON writes the dataset as a JSON array of records, atomically.
func WriteJSON(path string, items []ratings.Item) error {
	if items == nil {
		items = []ratings.Item{}
	}
	return fileutil.WriteAtomic(path, func(out io.Writer) error {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode json dataset: %w", err)
		}
		return nil
	})
}
