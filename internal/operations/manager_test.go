package operations

import (
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/schema"
	"github.com/litetable/litetable-sql/internal/storage"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/litetable/litetable-sql/internal/wal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"testing"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := map[string]struct {
		cfg   *Config
		error string
	}{
		"empty config": {
			cfg:   &Config{},
			error: "storage cannot be nil\nrow builder cannot be nil\nCDC emitter cannot be nil",
		},
		"missing CDC": {
			cfg: &Config{
				Storage: NewMocktableStorage(ctrl),
				Builder: NewMockrowBuilder(ctrl),
			},
			error: "CDC emitter cannot be nil",
		},
		"valid config": {
			cfg: &Config{
				Storage: NewMocktableStorage(ctrl),
				Builder: NewMockrowBuilder(ctrl),
				CDC:     NewMockchangeStream(ctrl),
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := New(tc.cfg)
			if tc.error != "" {
				req.Error(err)
				req.Nil(got)
				req.Equal(tc.error, err.Error())
				return
			}
			req.NoError(err)
			req.NotNil(got)
		})
	}
}

// newMocked returns a manager whose dependencies are all mocks.
func newMocked(t *testing.T) (*Manager, *MocktableStorage, *MockrowBuilder, *MockchangeStream) {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := NewMocktableStorage(ctrl)
	b := NewMockrowBuilder(ctrl)
	c := NewMockchangeStream(ctrl)

	m, err := New(&Config{Storage: s, Builder: b, CDC: c})
	require.NoError(t, err)
	return m, s, b, c
}

// newReal returns a manager backed by a real WAL, storage and row builder. Only the CDC
// stream is mocked.
func newReal(t *testing.T) (*Manager, *MockchangeStream) {
	t.Helper()
	ctrl := gomock.NewController(t)

	w, err := wal.New(&wal.Config{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = w.Close()
	})

	s, err := storage.New(&storage.Config{WAL: w})
	require.NoError(t, err)
	require.NoError(t, s.Start())

	b, err := row.New(&row.Config{Coercer: row.CoercerFunc(value.Coerce)})
	require.NoError(t, err)

	c := NewMockchangeStream(ctrl)
	m, err := New(&Config{Storage: s, Builder: b, CDC: c})
	require.NoError(t, err)
	return m, c
}

func tableA() *schema.Table {
	return &schema.Table{
		Name: "TableA",
		Columns: []schema.Column{
			{Name: "id", Type: value.SQLTypeInteger},
			{Name: "name", Type: value.SQLTypeText},
			{Name: "active", Type: value.SQLTypeBoolean},
		},
	}
}
