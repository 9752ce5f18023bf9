package wal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/rs/zerolog/log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	defaultWalDirectory = "wal"
	defaultWALFile      = "wal.log"

	// maxEntrySize bounds a single WAL line; rows are small, statement-scoped structures.
	maxEntrySize = 4 * 1024 * 1024
)

// Operation is the kind of mutation an Entry records.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationCreate
	OperationInsert
)

// Entry represents a Write-Ahead Log entry for a table mutation. Create entries carry the
// table schema, insert entries carry the encoded row and its ID.
type Entry struct {
	Operation Operation       `json:"operation"`
	Table     string          `json:"table"`
	Schema    *schema.Table   `json:"schema,omitempty"`
	RowID     string          `json:"rowId,omitempty"`
	Row       json.RawMessage `json:"row,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Manager struct {
	mu      sync.Mutex
	walFile *os.File
	path    string
}

type Config struct {
	// Path where the WAL directory will be saved
	Path string
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("path cannot be empty"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	walPath := filepath.Join(cfg.Path, defaultWalDirectory, defaultWALFile)
	if err := os.MkdirAll(filepath.Dir(walPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create WAL directory: %w", err)
	}

	file, err := os.OpenFile(walPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file: %w", err)
	}

	return &Manager{
		walFile: file,
		path:    walPath,
	}, nil
}

// Apply appends the entries to the WAL file, one JSON line each, in a single write. Either every
// entry is in the log or, on error, none is. A mutation must be applied here before it reaches
// the in-memory store.
func (m *Manager) Apply(entries ...*Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var batch []byte
	for _, e := range entries {
		jsonData, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}
		batch = append(append(batch, jsonData...), '\n')
	}
	if len(batch) == 0 {
		return nil
	}

	info, err := m.walFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat WAL: %w", err)
	}

	if _, err = m.walFile.Write(batch); err != nil {
		// drop a partially written batch so replay never sees half a statement
		if truncErr := m.walFile.Truncate(info.Size()); truncErr != nil {
			err = errors.Join(err, truncErr)
		}
		return fmt.Errorf("failed to write to WAL: %w", err)
	}

	return nil
}

// Load replays every entry of the WAL file, oldest first. Malformed lines are skipped; an
// error returned by fn stops the replay.
func (m *Manager) Load(fn func(e *Entry) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, err := os.Open(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No WAL file exists yet, not an error
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEntrySize)

	replayed := 0
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			log.Warn().Err(err).Msg("skipping malformed WAL entry")
			continue
		}

		if err := fn(&entry); err != nil {
			return fmt.Errorf("failed to replay WAL entry for table %s: %w", entry.Table, err)
		}
		replayed++
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	log.Debug().Int("entries", replayed).Str("path", m.path).Msg("WAL replayed")
	return nil
}

// Truncate drops every entry. It is called once the entries are covered by a snapshot.
func (m *Manager) Truncate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.walFile.Truncate(0); err != nil {
		return fmt.Errorf("failed to truncate WAL: %w", err)
	}
	if err := m.walFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync WAL: %w", err)
	}
	return nil
}

// Close closes the WAL file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walFile.Close()
}

// Start is a no-op: the WAL file is opened by New so storage can replay it on its own Start.
func (m *Manager) Start() error {
	return nil
}

// Stop closes the WAL file once every writer has stopped.
func (m *Manager) Stop() error {
	return m.Close()
}

func (m *Manager) Name() string {
	return "Write-Ahead Log"
}
