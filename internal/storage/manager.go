// Package storage keeps table schemas and materialized rows in memory, backed by the
// write-ahead log.
package storage

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/wal"
	"sync"
	"time"
)

//go:generate mockgen -destination=manager_mock.go -package=storage -source=manager.go

var (
	ErrTableExists   = errors.New("table already exists")
	ErrTableNotFound = errors.New("table not found")
	ErrRowShape      = errors.New("row does not match table schema")
)

const (
	defaultMaxSnapshotLimit = 3
)

type writeAhead interface {
	Apply(entries ...*wal.Entry) error
	Load(fn func(e *wal.Entry) error) error
	Truncate() error
}

// Record is a stored row and its ID.
type Record struct {
	ID  uuid.UUID `json:"id"`
	Row *row.Row  `json:"row"`
}

type table struct {
	schema  *schema.Table
	records []Record
	ids     map[uuid.UUID]struct{}
}

func newTable(s *schema.Table) *table {
	return &table{
		schema: s,
		ids:    make(map[uuid.UUID]struct{}),
	}
}

func (t *table) add(rec Record) {
	t.records = append(t.records, rec)
	t.ids[rec.ID] = struct{}{}
}

// Manager owns every table. Schema changes, row writes and snapshots are serialized by its
// lock, so the WAL only ever holds what happened since the latest snapshot.
type Manager struct {
	mutex      sync.RWMutex
	tables     map[string]*table
	writeAhead writeAhead

	dataDir          string
	snapshotInterval time.Duration
	maxSnapshotLimit int
	stop             chan struct{}
	done             chan struct{}
}

type Config struct {
	WAL writeAhead
	// DataDir holds the snapshot files. Snapshots are disabled when it is empty.
	DataDir string
	// SnapshotInterval is how often a snapshot is taken while running. Zero disables the
	// periodic snapshot; one is still taken on Stop.
	SnapshotInterval time.Duration
	// MaxSnapshotLimit is how many snapshot files are kept. Zero means 3.
	MaxSnapshotLimit int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.WAL == nil {
		errGrp = append(errGrp, errors.New("WAL cannot be nil"))
	}
	if c.SnapshotInterval < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid snapshot interval: %s", c.SnapshotInterval))
	}
	if c.MaxSnapshotLimit < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid snapshot limit: %d", c.MaxSnapshotLimit))
	}
	return errors.Join(errGrp...)
}

// New creates an empty storage manager. Call Start to load the latest snapshot and replay the
// WAL.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	limit := cfg.MaxSnapshotLimit
	if limit == 0 {
		limit = defaultMaxSnapshotLimit
	}
	return &Manager{
		tables:           make(map[string]*table),
		writeAhead:       cfg.WAL,
		dataDir:          cfg.DataDir,
		snapshotInterval: cfg.SnapshotInterval,
		maxSnapshotLimit: limit,
	}, nil
}

// CreateTable registers a table schema.
func (m *Manager) CreateTable(t *schema.Table) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.tables[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, t.Name)
	}

	if err := m.writeAhead.Apply(&wal.Entry{
		Operation: wal.OperationCreate,
		Table:     t.Name,
		Schema:    t,
		Timestamp: now(),
	}); err != nil {
		return err
	}

	m.tables[t.Name] = newTable(t)
	return nil
}

// Table returns the schema of the named table.
func (m *Manager) Table(name string) (*schema.Table, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	t, exists := m.tables[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return t.schema, nil
}

// Insert stores rows in the named table and returns their new IDs. Every row is checked and
// encoded before the batch is written to the WAL in one append, so either every row is stored
// or none is.
func (m *Manager) Insert(tableName string, rows ...*row.Row) ([]uuid.UUID, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, exists := m.tables[tableName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	width := len(t.schema.Columns)
	ids := make([]uuid.UUID, len(rows))
	entries := make([]*wal.Entry, len(rows))
	for i, r := range rows {
		if r.Len() != width {
			return nil, fmt.Errorf("%w: row %d has %d values, table %s has %d columns",
				ErrRowShape, i, r.Len(), tableName, width)
		}

		encoded, err := r.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i, err)
		}

		ids[i] = uuid.New()
		entries[i] = &wal.Entry{
			Operation: wal.OperationInsert,
			Table:     tableName,
			RowID:     ids[i].String(),
			Row:       encoded,
			Timestamp: now(),
		}
	}

	if err := m.writeAhead.Apply(entries...); err != nil {
		return nil, err
	}

	for i, r := range rows {
		t.add(Record{ID: ids[i], Row: r.Clone()})
	}
	return ids, nil
}

// Scan returns copies of every row of the table in insertion order.
func (m *Manager) Scan(tableName string) ([]Record, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	t, exists := m.tables[tableName]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableName)
	}

	out := make([]Record, len(t.records))
	for i, rec := range t.records {
		out[i] = Record{ID: rec.ID, Row: rec.Row.Clone()}
	}
	return out, nil
}
