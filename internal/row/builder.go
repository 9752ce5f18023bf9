package row

import (
	"errors"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/value"
)

//go:generate mockgen -destination=builder_mock.go -package=row -source=builder.go

// Coercer converts a literal into a value of a declared column type.
type Coercer interface {
	Coerce(declared value.SQLType, lit value.Literal) (value.Value, error)
}

// CoercerFunc adapts a plain function, such as value.Coerce, to the Coercer interface.
type CoercerFunc func(declared value.SQLType, lit value.Literal) (value.Value, error)

func (f CoercerFunc) Coerce(declared value.SQLType, lit value.Literal) (value.Value, error) {
	return f(declared, lit)
}

// Builder turns literal rows into Rows. It holds no state besides its coercer and is safe for
// concurrent use.
type Builder struct {
	coercer Coercer
}

type Config struct {
	Coercer Coercer
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Coercer == nil {
		errGrp = append(errGrp, errors.New("coercer is required"))
	}
	return errors.Join(errGrp...)
}

// New returns a Builder that coerces literals with cfg.Coercer.
func New(cfg *Config) (*Builder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Builder{
		coercer: cfg.Coercer,
	}, nil
}

// Params is the shape of an INSERT statement against one table.
type Params struct {
	// Columns are the table's columns in schema order.
	Columns []schema.Column
	// Targets is the statement's explicit column list. It is only read when Explicit is set,
	// so an explicit empty list can be told apart from no list at all.
	Targets  []string
	Explicit bool
}

// Build materializes one row of literals. Without an explicit column list the literals are
// taken to be in schema order; with one, each schema column is looked up by name in the list
// and takes the literal at the matching position.
//
// Errors are ErrLackOfRequiredColumn and ErrLackOfRequiredValue (as *Error, naming the
// column), or the coercer's error unchanged.
func (b *Builder) Build(p *Params, literals []value.Literal) (*Row, error) {
	values := make([]value.Value, 0, len(p.Columns))
	for i, col := range p.Columns {
		pos, err := p.position(i, col)
		if err != nil {
			return nil, err
		}

		if pos >= len(literals) {
			return nil, newColumnError(ErrLackOfRequiredValue, col.Name)
		}

		v, err := b.coercer.Coerce(col.Type, literals[pos])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return &Row{values: values}, nil
}

// BuildFirst materializes the first of a set of candidate literal rows and ignores the rest.
// An empty set fails with ErrUnreachable; multi-row statements should call Build once per row
// instead.
func (b *Builder) BuildFirst(p *Params, candidates [][]value.Literal) (*Row, error) {
	if len(candidates) == 0 {
		return nil, ErrUnreachable
	}
	return b.Build(p, candidates[0])
}

// position resolves which literal supplies the column at schema index i.
func (p *Params) position(i int, col schema.Column) (int, error) {
	if !p.Explicit {
		return i, nil
	}
	for pos, target := range p.Targets {
		if target == col.Name {
			return pos, nil
		}
	}
	return -1, newColumnError(ErrLackOfRequiredColumn, col.Name)
}
