package engine

import (
	"github.com/litetable/litetable-sql/internal/cdc"
	"github.com/litetable/litetable-sql/internal/operations"
	"github.com/litetable/litetable-sql/internal/row"
	"github.com/litetable/litetable-sql/internal/storage"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/litetable/litetable-sql/internal/wal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"io"
	"net"
	"testing"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := map[string]struct {
		cfg   *Config
		size  int
		error string
	}{
		"invalid config": {
			cfg:   &Config{MaxBufferSize: -1},
			error: "operations manager is required\ninvalid max buffer size: -1",
		},
		"default buffer": {
			cfg:  &Config{Operations: NewMockops(ctrl)},
			size: defaultMaxBufferSize,
		},
		"custom buffer": {
			cfg:  &Config{Operations: NewMockops(ctrl), MaxBufferSize: 128},
			size: 128,
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
			req.Equal(tc.size, got.maxBufferSize)
		})
	}
}

func TestEngine_Handle(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		closeErr error
		readData string
		readErr  error

		opsResult []byte
		opsErr    error

		shouldSucceed bool
		writeErr      error
	}{
		"read failure": {
			readErr: assert.AnError,
		},
		"ops failure": {
			readData:  `SELECT {"table":"users"}`,
			opsResult: nil,
			opsErr:    assert.AnError,
		},
		"successful write": {
			readData:      `INSERT {"table":"users","values":[[1]]}`,
			opsResult:     []byte(`{"rowIds":["a"],"rowsAffected":1}`),
			shouldSucceed: true,
		},
		"write and close failures are only logged": {
			readData:      `SELECT {"table":"users"}`,
			opsResult:     []byte("{}"),
			shouldSucceed: true,
			writeErr:      assert.AnError,
			closeErr:      assert.AnError,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockConn := NewMockConn(ctrl)
			mockOps := NewMockops(ctrl)

			req := require.New(t)
			// every connection is read, answered and closed
			mockConn.
				EXPECT().
				Read(gomock.Any()).
				DoAndReturn(func(b []byte) (int, error) {
					return copy(b, tc.readData), tc.readErr
				}).
				Times(1)

			mockConn.
				EXPECT().
				Write(gomock.Any()).
				DoAndReturn(func(b []byte) (n int, err error) {
					if tc.readErr != nil {
						req.Equal("Error: "+tc.readErr.Error(), string(b))
					}
					if tc.opsErr != nil {
						req.Equal("Error: "+tc.opsErr.Error(), string(b))
					}

					if tc.shouldSucceed {
						req.Equal(string(tc.opsResult), string(b))
					}
					return len(b), tc.writeErr
				}).
				Times(1)

			if tc.readErr == nil {
				mockOps.
					EXPECT().
					Run([]byte(tc.readData)).
					Return(tc.opsResult, tc.opsErr).
					Times(1)
			}

			mockConn.
				EXPECT().
				Close().
				Return(tc.closeErr).
				Times(1)

			e := &Engine{
				maxBufferSize: 4096,
				operations:    mockOps,
			}

			e.Handle(mockConn)
		})
	}
}

func TestEngine_Handle_truncatesToBuffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockConn := NewMockConn(ctrl)
	mockOps := NewMockops(ctrl)

	mockConn.EXPECT().Read(gomock.Any()).DoAndReturn(func(b []byte) (int, error) {
		require.Len(t, b, 4)
		return copy(b, "SELECT {}"), nil
	})
	mockOps.EXPECT().Run([]byte("SELE")).Return(nil, assert.AnError)
	mockConn.EXPECT().Write([]byte("Error: " + assert.AnError.Error())).Return(0, nil)
	mockConn.EXPECT().Close().Return(nil)

	e := &Engine{maxBufferSize: 4, operations: mockOps}
	e.Handle(mockConn)
}

func TestEngine_Handle_segmentedMessage(t *testing.T) {
	tests := map[string]struct {
		segments []string
		eof      bool
		want     string
	}{
		"payload split across reads": {
			segments: []string{`INSERT {"table":`, `"users","values":`, `[[1]]}`},
			want:     `INSERT {"table":"users","values":[[1]]}`,
		},
		"client closes after a partial payload": {
			segments: []string{`SELECT {"table":`},
			eof:      true,
			want:     `SELECT {"table":`,
		},
		"invalid payload is not waited on": {
			segments: []string{`SELECT {"table" 1}`},
			want:     `SELECT {"table" 1}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockConn := NewMockConn(ctrl)
			mockOps := NewMockops(ctrl)

			// expectations with the same matcher are consumed in declaration order
			for _, segment := range tc.segments {
				mockConn.EXPECT().Read(gomock.Any()).DoAndReturn(func(b []byte) (int, error) {
					return copy(b, segment), nil
				})
			}
			if tc.eof {
				mockConn.EXPECT().Read(gomock.Any()).Return(0, io.EOF)
			}

			mockOps.EXPECT().Run([]byte(tc.want)).Return([]byte("{}"), nil)
			mockConn.EXPECT().Write([]byte("{}")).Return(2, nil)
			mockConn.EXPECT().Close().Return(nil)

			e := &Engine{maxBufferSize: 4096, operations: mockOps}
			e.Handle(mockConn)
		})
	}
}

func TestEngine_Handle_splitOverPipe(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOps := NewMockops(ctrl)
	mockOps.EXPECT().Run([]byte(`SCALAR {"table":"users","columns":["id"]}`)).Return([]byte("7"), nil)
	e := &Engine{maxBufferSize: 4096, operations: mockOps}

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Handle(server)
	}()

	// net.Pipe delivers each write as its own read
	_, err := client.Write([]byte(`SCALAR {"table":"users",`))
	req.NoError(err)
	_, err = client.Write([]byte(`"columns":["id"]}`))
	req.NoError(err)

	got, err := io.ReadAll(client)
	req.NoError(err)
	req.Equal("7", string(got))
	req.NoError(client.Close())
	<-done
}

// roundTrip sends msg through an in-memory connection and returns the engine's response.
func roundTrip(t *testing.T, e *Engine, msg string) string {
	t.Helper()
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Handle(server)
	}()

	_, err := client.Write([]byte(msg))
	require.NoError(t, err)

	got, err := io.ReadAll(client)
	require.NoError(t, err)
	require.NoError(t, client.Close())
	<-done
	return string(got)
}

func TestEngine_Handle_statements(t *testing.T) {
	req := require.New(t)

	w, err := wal.New(&wal.Config{Path: t.TempDir()})
	req.NoError(err)
	defer w.Close()

	s, err := storage.New(&storage.Config{WAL: w})
	req.NoError(err)
	req.NoError(s.Start())

	b, err := row.New(&row.Config{Coercer: row.CoercerFunc(value.Coerce)})
	req.NoError(err)

	stream, err := cdc.New(&cdc.Config{Address: "127.0.0.1"})
	req.NoError(err)

	ops, err := operations.New(&operations.Config{Storage: s, Builder: b, CDC: stream})
	req.NoError(err)

	e, err := New(&Config{Operations: ops})
	req.NoError(err)

	got := roundTrip(t, e, `CREATE {"table":"TableA","columns":[{"name":"id","type":"INT"},{"name":"ok","type":"BOOL"}]}`)
	req.JSONEq(`{"name":"TableA","columns":[{"name":"id","type":"INTEGER"},{"name":"ok","type":"BOOLEAN"}]}`, got)

	tests := map[string]string{
		`INSERT {"table":"TableA","columns":[],"values":[[]]}`: "Error: lack of required column: id",
		`INSERT {"table":"TableA","values":[[]]}`:              "Error: lack of required value: id",
		`INSERT {"table":"TableA","values":[[1,0]]}`:           "Error: sql type not supported: BOOLEAN from integer(0)",
		`SCALAR {"table":"TableA","columns":["ok"]}`:           "Error: no rows: table TableA is empty",
		`UPDATE {"table":"TableA"}`:                            "Error: unknown protocol message",
	}
	for msg, want := range tests {
		req.Equal(want, roundTrip(t, e, msg), msg)
	}

	req.Contains(roundTrip(t, e, `INSERT {"table":"TableA","values":[[1,true]]}`), `"rowsAffected":1`)
	req.JSONEq(`{"kind":"boolean","value":true}`, roundTrip(t, e, `SCALAR {"table":"TableA","columns":["ok"]}`))
}
