// Package protocol defines the statement protocol of the server.
//
// A message is a verb, one space and a JSON payload:
//
//	CREATE {"table":"users","columns":[{"name":"id","type":"INTEGER"}]}
//	INSERT {"table":"users","columns":["id"],"values":[[1]]}
//	SELECT {"table":"users","columns":["id"]}
//	SCALAR {"table":"users","columns":["id"]}
package protocol

import (
	"bytes"
	"errors"
	"fmt"
)

const (
	Unknown = iota
	Create
	Insert
	Select
	Scalar
)

var (
	// ErrUnknown is returned when the protocol is unknown
	ErrUnknown = errors.New("unknown protocol message")
	// ErrEmptyPayload is returned when a known verb carries no payload
	ErrEmptyPayload = errors.New("empty payload")
)

var verbs = []struct {
	prefix    []byte
	operation int
}{
	{[]byte("CREATE "), Create},
	{[]byte("INSERT "), Insert},
	{[]byte("SELECT "), Select},
	{[]byte("SCALAR "), Scalar},
}

// Decode splits a message into its operation and its payload.
func Decode(buf []byte) (int, []byte, error) {
	for _, v := range verbs {
		if !bytes.HasPrefix(buf, v.prefix) {
			continue
		}

		payload := bytes.TrimSpace(buf[len(v.prefix):])
		if len(payload) == 0 {
			return v.operation, nil, newError(ErrEmptyPayload, "%s", bytes.TrimSpace(v.prefix))
		}
		return v.operation, payload, nil
	}

	return Unknown, nil, ErrUnknown
}

// Encode builds a message for the given operation. It is the inverse of Decode.
func Encode(operation int, payload []byte) ([]byte, error) {
	for _, v := range verbs {
		if v.operation == operation {
			msg := make([]byte, 0, len(v.prefix)+len(payload))
			msg = append(msg, v.prefix...)
			return append(msg, payload...), nil
		}
	}
	return nil, fmt.Errorf("%w: operation %d", ErrUnknown, operation)
}
