package operations

import (
	"github.com/litetable/litetable-sql/internal/cdc"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/rs/zerolog/log"
	"time"
)

// InsertStatement is a parsed INSERT. Columns is the explicit column list: nil when the
// statement has none, empty when it was written as "()".
type InsertStatement struct {
	Table   string            `json:"table"`
	Columns []string          `json:"columns"`
	Values  [][]value.Literal `json:"values"`
}

type InsertResult struct {
	RowIDs       []string `json:"rowIds"`
	RowsAffected int      `json:"rowsAffected"`
}

// Insert materializes every VALUES row against the table schema and stores them. Rows are
// built one at a time; if any row fails, nothing is stored and the row or coercion error is
// returned as is.
func (m *Manager) Insert(stmt *InsertStatement) (*InsertResult, error) {
	if len(stmt.Values) == 0 {
		return nil, errNoValues
	}

	tbl, err := m.storage.Table(stmt.Table)
	if err != nil {
		return nil, err
	}

	params := &row.Params{
		Columns:  tbl.Columns,
		Targets:  stmt.Columns,
		Explicit: stmt.Columns != nil,
	}

	rows := make([]*row.Row, 0, len(stmt.Values))
	for i, literals := range stmt.Values {
		r, buildErr := m.builder.Build(params, literals)
		if buildErr != nil {
			log.Debug().Err(buildErr).Str("table", tbl.Name).Int("row", i).Msg("insert rejected")
			return nil, buildErr
		}
		rows = append(rows, r)
	}

	ids, err := m.storage.Insert(tbl.Name, rows...)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &InsertResult{
		RowIDs:       make([]string, 0, len(ids)),
		RowsAffected: len(ids),
	}
	for i, id := range ids {
		result.RowIDs = append(result.RowIDs, id.String())
		m.cdc.Emit(&cdc.Event{
			Table:     tbl.Name,
			RowID:     id.String(),
			Columns:   tbl.ColumnNames(),
			Values:    rows[i].Values(),
			Timestamp: now,
		})
	}

	log.Debug().Str("table", tbl.Name).Int("rows", len(ids)).Msg("rows inserted")
	return result, nil
}
