package operations

import (
	"fmt"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/rs/zerolog/log"
)

// ColumnDefinition is one column of a CREATE TABLE statement.
type ColumnDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateTableStatement is a parsed CREATE TABLE.
type CreateTableStatement struct {
	Table   string             `json:"table"`
	Columns []ColumnDefinition `json:"columns"`
}

// CreateTable resolves the declared column types and registers the table.
func (m *Manager) CreateTable(stmt *CreateTableStatement) (*schema.Table, error) {
	columns := make([]schema.Column, 0, len(stmt.Columns))
	for _, def := range stmt.Columns {
		t, err := value.ParseSQLType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: column %s: %w", errInvalidStatement, def.Name, err)
		}
		columns = append(columns, schema.Column{Name: def.Name, Type: t})
	}

	tbl, err := schema.NewTable(stmt.Table, columns)
	if err != nil {
		return nil, newError(errInvalidStatement, "%v", err)
	}

	if err = m.storage.CreateTable(tbl); err != nil {
		return nil, err
	}

	log.Debug().Str("table", tbl.Name).Int("columns", len(tbl.Columns)).Msg("table created")
	return tbl, nil
}
