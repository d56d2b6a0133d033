// Package assemble merges an engine's tables into a single result.
package assemble

import "github.com/zabl/finextract/model"

// Assemble concatenates tables in slice order into one result for engine.
// Rows whose every cell is empty are removed, tables left without rows are
// dropped, and the first remaining table's columns become the result's
// columns. Columns are not aligned across tables.
func Assemble(engine string, tables []model.RawTable) model.EngineResult {
	result := model.EngineResult{Engine: engine}

	for _, t := range tables {
		var kept []model.Row
		for _, r := range t.Rows {
			if !r.IsEmpty() {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		if result.Columns == nil && len(t.Columns) > 0 {
			result.Columns = append([]string(nil), t.Columns...)
		}
		result.Rows = append(result.Rows, kept...)
	}

	return result
}
