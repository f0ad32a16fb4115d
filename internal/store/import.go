package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// RowMapper turns an imported row into form values keyed by field name.
type RowMapper func(row core.RawRecord) map[string]string

// Importer returns an import handler for m. Every row is mapped, then
// validated with form; the batch is stored only when all rows are valid.
// Row numbers in errors are the row's line in the source file when the reader
// recorded one, else its position counting the header as row 1.
func Importer[E core.Entity](m *Memory[E], form core.Form, mapRow RowMapper) core.ImportHandler {
	return func(ctx context.Context, rows []core.RawRecord) error {
		if len(rows) == 0 {
			return errors.New("empty file: no data rows")
		}

		batch := make([]core.FormData, 0, len(rows))
		for i, row := range rows {
			values := map[string]string(row)
			if mapRow != nil {
				values = mapRow(row)
			}
			data, err := form.Decode(values)
			if err != nil {
				line, ok := row.Line()
				if !ok {
					line = i + 2
				}
				return fmt.Errorf("import row %d: %w", line, err)
			}
			batch = append(batch, data)
		}

		_, err := m.CreateAll(ctx, batch)
		return err
	}
}
