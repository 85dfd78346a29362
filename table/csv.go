/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"bytes"
	"encoding/csv"
)

// ToCSV renders t.ToGrid() as CSV (nil cells become ""). Parsing the result
// back with encoding/csv and comparing against ToGrid reproduces the grid
// modulo None<->"".
func (t *Table) ToCSV() (string, error) {
	grid := t.ToGrid()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range grid {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell != nil {
				record[i] = *cell
			}
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
