package value

import (
	"errors"
	"fmt"
	"strings"
)

// SQLType is the declared type of a table column.
type SQLType int

const (
	SQLTypeUnknown SQLType = iota
	SQLTypeInteger
	SQLTypeFloat
	SQLTypeText
	SQLTypeBoolean

	// The types below can be declared in a schema but have no coercion path in the value
	// domain yet.
	SQLTypeDate
	SQLTypeTimestamp
	SQLTypeBlob
)

var (
	// ErrUnknownSQLType is returned when a type name does not map to any SQLType
	ErrUnknownSQLType = errors.New("unknown sql type")
)

var sqlTypeNames = map[SQLType]string{
	SQLTypeInteger:   "INTEGER",
	SQLTypeFloat:     "FLOAT",
	SQLTypeText:      "TEXT",
	SQLTypeBoolean:   "BOOLEAN",
	SQLTypeDate:      "DATE",
	SQLTypeTimestamp: "TIMESTAMP",
	SQLTypeBlob:      "BLOB",
}

var sqlTypeAliases = map[string]SQLType{
	"INT":       SQLTypeInteger,
	"INTEGER":   SQLTypeInteger,
	"BIGINT":    SQLTypeInteger,
	"FLOAT":     SQLTypeFloat,
	"REAL":      SQLTypeFloat,
	"DOUBLE":    SQLTypeFloat,
	"TEXT":      SQLTypeText,
	"VARCHAR":   SQLTypeText,
	"STRING":    SQLTypeText,
	"BOOL":      SQLTypeBoolean,
	"BOOLEAN":   SQLTypeBoolean,
	"DATE":      SQLTypeDate,
	"TIMESTAMP": SQLTypeTimestamp,
	"BLOB":      SQLTypeBlob,
}

// ParseSQLType resolves a SQL type name, case-insensitively.
func ParseSQLType(name string) (SQLType, error) {
	t, ok := sqlTypeAliases[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return SQLTypeUnknown, newError(ErrUnknownSQLType, "%q", name)
	}
	return t, nil
}

// Supported reports whether the value domain can hold values of this type.
func (t SQLType) Supported() bool {
	switch t {
	case SQLTypeInteger, SQLTypeFloat, SQLTypeText, SQLTypeBoolean:
		return true
	default:
		return false
	}
}

func (t SQLType) String() string {
	if name, ok := sqlTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SQLType(%d)", int(t))
}

// MarshalText satisfies encoding.TextMarshaler so schemas serialize with type names.
func (t SQLType) MarshalText() ([]byte, error) {
	name, ok := sqlTypeNames[t]
	if !ok {
		return nil, newError(ErrUnknownSQLType, "%d", int(t))
	}
	return []byte(name), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler.
func (t *SQLType) UnmarshalText(text []byte) error {
	parsed, err := ParseSQLType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
