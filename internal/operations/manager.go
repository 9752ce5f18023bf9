// Package operations executes table statements: it resolves schemas, materializes rows with
// the row builder, writes them to storage and announces them on the CDC stream.
package operations

import (
	"errors"
	"github.com/google/uuid"
	"github.com/litetable/litetable-sql/internal/cdc"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/storage"
	"github.com/litetable/litetable-sql/internal/value"
)

//go:generate mockgen -destination=manager_mock.go -package=operations -source=manager.go

type tableStorage interface {
	CreateTable(t *schema.Table) error
	Table(name string) (*schema.Table, error)
	Insert(table string, rows ...*row.Row) ([]uuid.UUID, error)
	Scan(table string) ([]storage.Record, error)
}

type rowBuilder interface {
	Build(p *row.Params, literals []value.Literal) (*row.Row, error)
}

type changeStream interface {
	Emit(e *cdc.Event)
}

type Manager struct {
	storage tableStorage
	builder rowBuilder
	cdc     changeStream
}

type Config struct {
	Storage tableStorage
	Builder rowBuilder
	CDC     changeStream
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Storage == nil {
		errGrp = append(errGrp, errors.New("storage cannot be nil"))
	}
	if c.Builder == nil {
		errGrp = append(errGrp, errors.New("row builder cannot be nil"))
	}
	if c.CDC == nil {
		errGrp = append(errGrp, errors.New("CDC emitter cannot be nil"))
	}
	return errors.Join(errGrp...)
}

// New creates a new operations manager
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Manager{
		storage: cfg.Storage,
		builder: cfg.Builder,
		cdc:     cfg.CDC,
	}, nil
}
