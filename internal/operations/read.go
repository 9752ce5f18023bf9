package operations

import (
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/value"
)

// SelectStatement reads whole tables. An empty column list selects every column.
type SelectStatement struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
}

// ResultSet holds projected rows in result-column order.
type ResultSet struct {
	Columns []string        `json:"columns"`
	RowIDs  []string        `json:"rowIds"`
	Rows    [][]value.Value `json:"rows"`
}

// Select projects every stored row of the table onto the requested columns.
func (m *Manager) Select(stmt *SelectStatement) (*ResultSet, error) {
	tbl, positions, err := m.resolve(stmt)
	if err != nil {
		return nil, err
	}

	records, err := m.storage.Scan(tbl.Name)
	if err != nil {
		return nil, err
	}

	result := &ResultSet{
		Columns: make([]string, 0, len(positions)),
		RowIDs:  make([]string, 0, len(records)),
		Rows:    make([][]value.Value, 0, len(records)),
	}
	for _, p := range positions {
		result.Columns = append(result.Columns, tbl.Columns[p].Name)
	}

	for _, rec := range records {
		projected, ok := rec.Row.Project(positions...)
		if !ok {
			return nil, newError(errColumnNotFound, "row %s is shorter than table %s", rec.ID, tbl.Name)
		}
		result.RowIDs = append(result.RowIDs, rec.ID.String())
		result.Rows = append(result.Rows, projected.Values())
	}

	return result, nil
}

// Scalar returns the single projected value of the first row of the table, the way a scalar
// subquery is evaluated.
func (m *Manager) Scalar(stmt *SelectStatement) (value.Value, error) {
	tbl, positions, err := m.resolve(stmt)
	if err != nil {
		return value.Value{}, err
	}
	if len(positions) != 1 {
		return value.Value{}, newError(errInvalidStatement,
			"scalar select needs exactly one column, got %d", len(positions))
	}

	records, err := m.storage.Scan(tbl.Name)
	if err != nil {
		return value.Value{}, err
	}
	if len(records) == 0 {
		return value.Value{}, newError(errNoRows, "table %s is empty", tbl.Name)
	}

	projected, ok := records[0].Row.Project(positions...)
	if !ok {
		return value.Value{}, newError(errColumnNotFound, "row %s is shorter than table %s",
			records[0].ID, tbl.Name)
	}
	return projected.TakeFirst()
}

// resolve returns the table schema and the schema positions of the selected columns.
func (m *Manager) resolve(stmt *SelectStatement) (*schema.Table, []int, error) {
	tbl, err := m.storage.Table(stmt.Table)
	if err != nil {
		return nil, nil, err
	}

	if len(stmt.Columns) == 0 {
		positions := make([]int, len(tbl.Columns))
		for i := range positions {
			positions[i] = i
		}
		return tbl, positions, nil
	}

	positions := make([]int, 0, len(stmt.Columns))
	for _, name := range stmt.Columns {
		pos, ok := tbl.Position(name)
		if !ok {
			return nil, nil, newError(errColumnNotFound, "%s.%s", tbl.Name, name)
		}
		positions = append(positions, pos)
	}
	return tbl, positions, nil
}
