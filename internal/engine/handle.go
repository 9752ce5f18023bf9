package engine

import (
	"github.com/rs/zerolog/log"
	"net"
)

// Handle implements the server.handler interface. Every connection carries one message and
// gets one response, either the JSON result or "Error: " followed by the error text. The
// connection is always closed.
func (e *Engine) Handle(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing connection")
		}
	}()

	buf, err := e.readConn(conn)
	if err != nil {
		log.Debug().Err(err).Msg("read error")
		e.writeError(conn, err)
		return
	}

	response, err := e.operations.Run(buf)
	if err != nil {
		log.Debug().Err(err).Msg("statement failed")
		e.writeError(conn, err)
		return
	}

	if _, err = conn.Write(response); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

func (e *Engine) writeError(conn net.Conn, err error) {
	if _, writeErr := conn.Write([]byte("Error: " + err.Error())); writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error")
	}
}
