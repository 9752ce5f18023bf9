// Package engine answers statement connections: it reads one message from the connection, runs
// it and writes back the response.
package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
)

//go:generate mockgen -destination=engine_mock.go -package=engine -source=engine.go
//go:generate mockgen -destination=conn_mock.go -package=engine net Conn

const (
	defaultMaxBufferSize = 4096
)

type ops interface {
	Run(buf []byte) ([]byte, error)
}

// Engine is the connection handler of the SQL server.
type Engine struct {
	maxBufferSize int
	operations    ops
}

type Config struct {
	Operations ops
	// MaxBufferSize caps a single message. Zero means the default of 4096 bytes.
	MaxBufferSize int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Operations == nil {
		errGrp = append(errGrp, errors.New("operations manager is required"))
	}
	if c.MaxBufferSize < 0 {
		errGrp = append(errGrp, fmt.Errorf("invalid max buffer size: %d", c.MaxBufferSize))
	}

	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	size := cfg.MaxBufferSize
	if size == 0 {
		size = defaultMaxBufferSize
	}
	return &Engine{
		maxBufferSize: size,
		operations:    cfg.Operations,
	}, nil
}

// readConn reads a single message from the connection. A message may arrive in several
// segments, so reading goes on until the payload is a complete JSON value, the client closes
// its side or the buffer is full.
func (e *Engine) readConn(conn net.Conn) ([]byte, error) {
	buf := make([]byte, 0, e.maxBufferSize)
	for len(buf) < e.maxBufferSize {
		n, err := conn.Read(buf[len(buf):e.maxBufferSize])
		buf = buf[:len(buf)+n]
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				break
			}
			return nil, err
		}
		if complete(buf) {
			break
		}
	}
	return buf, nil
}

// complete reports whether buf holds a verb followed by a whole JSON payload. A payload that is
// invalid rather than truncated also counts as complete so the decode error reaches the client.
func complete(buf []byte) bool {
	i := bytes.IndexByte(buf, ' ')
	if i < 0 {
		return false
	}

	var payload json.RawMessage
	err := json.NewDecoder(bytes.NewReader(buf[i+1:])).Decode(&payload)
	return !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF)
}
