package storage

import (
	"encoding/json"
	"fmt"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/rs/zerolog/log"
	"os"
	"path/filepath"
	"sort"
)

const (
	snapshotPattern = "snapshot-*.db"
)

type snapshotTable struct {
	Schema  *schema.Table `json:"schema"`
	Records []Record      `json:"records"`
}

// Snapshot writes every table to a new snapshot file, truncates the WAL and prunes old
// snapshots beyond the configured limit.
func (m *Manager) Snapshot() error {
	if m.dataDir == "" {
		return nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	filename, err := m.saveSnapshot()
	if err != nil {
		return err
	}

	if err = m.writeAhead.Truncate(); err != nil {
		return fmt.Errorf("failed to truncate WAL after snapshot: %w", err)
	}

	log.Debug().Str("file", filename).Int("tables", len(m.tables)).Msg("snapshot saved")
	m.maintainSnapshotLimit()
	return nil
}

// saveSnapshot must be called with the lock held.
func (m *Manager) saveSnapshot() (string, error) {
	tables := make([]snapshotTable, 0, len(m.tables))
	for _, t := range m.tables {
		tables = append(tables, snapshotTable{Schema: t.schema, Records: t.records})
	}
	// stable file contents for the same data
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Schema.Name < tables[j].Schema.Name
	})

	dataBytes, err := json.Marshal(tables)
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err = os.MkdirAll(m.dataDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	filename := filepath.Join(m.dataDir, fmt.Sprintf("snapshot-%d.db", now().UnixNano()))
	tmp := filename + ".tmp"
	if err = os.WriteFile(tmp, dataBytes, 0640); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err = os.Rename(tmp, filename); err != nil {
		return "", fmt.Errorf("failed to move snapshot file into place: %w", err)
	}

	return filename, nil
}

// loadFromLatestSnapshot replaces the in-memory tables with the newest snapshot. It must be
// called with the lock held.
func (m *Manager) loadFromLatestSnapshot() error {
	files, err := filepath.Glob(filepath.Join(m.dataDir, snapshotPattern))
	if err != nil {
		return fmt.Errorf("failed to list snapshot files: %w", err)
	}

	if len(files) == 0 {
		// No snapshots yet, nothing to load
		return nil
	}

	sort.Strings(files)
	latest := files[len(files)-1]

	dataBytes, err := os.ReadFile(latest)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", latest, err)
	}

	var loaded []snapshotTable
	if err = json.Unmarshal(dataBytes, &loaded); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", latest, err)
	}

	tables := make(map[string]*table, len(loaded))
	for _, st := range loaded {
		if st.Schema == nil {
			return fmt.Errorf("snapshot %s: table without schema", latest)
		}
		t := newTable(st.Schema)
		for _, rec := range st.Records {
			if rec.Row == nil || rec.Row.Len() != len(st.Schema.Columns) {
				return fmt.Errorf("%w: snapshot %s, row %s", ErrRowShape, latest, rec.ID)
			}
			t.add(rec)
		}
		tables[st.Schema.Name] = t
	}
	m.tables = tables

	log.Debug().Str("file", latest).Int("tables", len(tables)).Msg("snapshot loaded")
	return nil
}

// maintainSnapshotLimit prunes the oldest snapshot files beyond the configured limit.
func (m *Manager) maintainSnapshotLimit() {
	files, err := filepath.Glob(filepath.Join(m.dataDir, snapshotPattern))
	if err != nil {
		log.Warn().Err(err).Msg("failed to list snapshot files")
		return
	}

	if len(files) <= m.maxSnapshotLimit {
		return
	}

	// file names carry the timestamp, so lexical order is chronological
	sort.Strings(files)

	for i := 0; i < len(files)-m.maxSnapshotLimit; i++ {
		if err := os.Remove(files[i]); err != nil {
			log.Warn().Err(err).Str("file", files[i]).Msg("failed to remove old snapshot")
			continue
		}
		log.Debug().Str("file", files[i]).Msg("pruned old snapshot")
	}
}
