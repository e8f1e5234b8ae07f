// Package report writes scenario results and portfolio summaries to files.
package report

import (
	"encoding/json"
	"io"

	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
)

// WriteJSON writes rows as one JSON array, one object per customer.
func WriteJSON(w io.Writer, rows []scenariodomain.Row) error {
	if rows == nil {
		rows = []scenariodomain.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
