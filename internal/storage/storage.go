package storage

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/wal"
	"github.com/rs/zerolog/log"
	"time"
)

var now = time.Now

// Start loads the latest snapshot, replays the WAL on top of it and starts the snapshot loop.
func (m *Manager) Start() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.dataDir != "" {
		if err := m.loadFromLatestSnapshot(); err != nil {
			return err
		}
	}

	if err := m.writeAhead.Load(m.replay); err != nil {
		return fmt.Errorf("failed to load WAL: %w", err)
	}

	if m.dataDir != "" && m.snapshotInterval > 0 {
		m.stop = make(chan struct{})
		m.done = make(chan struct{})
		go m.snapshotLoop()
	}

	log.Info().Int("tables", len(m.tables)).Msg("storage loaded")
	return nil
}

// Stop ends the snapshot loop and takes a final snapshot.
func (m *Manager) Stop() error {
	if m.stop != nil {
		close(m.stop)
		<-m.done
		m.stop = nil
	}

	if m.dataDir == "" {
		return nil
	}
	return m.Snapshot()
}

func (m *Manager) Name() string {
	return "Table Storage"
}

func (m *Manager) snapshotLoop() {
	defer close(m.done)

	ticker := time.NewTicker(m.snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if err := m.Snapshot(); err != nil {
				log.Error().Err(err).Msg("periodic snapshot failed")
			}
		}
	}
}

// replay applies a single WAL entry. It must be called with the lock held. Entries already
// covered by the loaded snapshot are skipped, which makes a crash between writing a snapshot
// and truncating the WAL harmless.
func (m *Manager) replay(e *wal.Entry) error {
	switch e.Operation {
	case wal.OperationCreate:
		if e.Schema == nil {
			return fmt.Errorf("create entry without schema")
		}
		if _, exists := m.tables[e.Table]; exists {
			return nil
		}
		m.tables[e.Table] = newTable(e.Schema)

	case wal.OperationInsert:
		t, exists := m.tables[e.Table]
		if !exists {
			return fmt.Errorf("%w: %s", ErrTableNotFound, e.Table)
		}

		id, err := uuid.Parse(e.RowID)
		if err != nil {
			return fmt.Errorf("invalid row id %q: %w", e.RowID, err)
		}
		if _, seen := t.ids[id]; seen {
			return nil
		}

		r := &row.Row{}
		if err = json.Unmarshal(e.Row, r); err != nil {
			return fmt.Errorf("invalid row %s: %w", e.RowID, err)
		}
		if r.Len() != len(t.schema.Columns) {
			return fmt.Errorf("%w: row %s", ErrRowShape, e.RowID)
		}
		t.add(Record{ID: id, Row: r})

	default:
		log.Warn().Int("operation", int(e.Operation)).Msg("unknown WAL operation, skipping")
	}
	return nil
}
