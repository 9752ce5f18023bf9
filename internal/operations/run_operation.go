package operations

import (
	"bytes"
	"encoding/json"
	"github.com/litetable/litetable-sql/internal/protocol"
)

// Run decodes a protocol message, executes it and returns the JSON response.
func (m *Manager) Run(buf []byte) ([]byte, error) {
	op, payload, err := protocol.Decode(buf)
	if err != nil {
		return nil, err
	}

	switch op {
	case protocol.Create:
		var stmt CreateTableStatement
		if err = decodePayload(payload, &stmt); err != nil {
			return nil, err
		}
		tbl, createErr := m.CreateTable(&stmt)
		if createErr != nil {
			return nil, createErr
		}
		return json.Marshal(tbl)

	case protocol.Insert:
		var stmt InsertStatement
		if err = decodePayload(payload, &stmt); err != nil {
			return nil, err
		}
		result, insertErr := m.Insert(&stmt)
		if insertErr != nil {
			return nil, insertErr
		}
		return json.Marshal(result)

	case protocol.Select:
		var stmt SelectStatement
		if err = decodePayload(payload, &stmt); err != nil {
			return nil, err
		}
		result, selectErr := m.Select(&stmt)
		if selectErr != nil {
			return nil, selectErr
		}
		return json.Marshal(result)

	case protocol.Scalar:
		var stmt SelectStatement
		if err = decodePayload(payload, &stmt); err != nil {
			return nil, err
		}
		v, scalarErr := m.Scalar(&stmt)
		if scalarErr != nil {
			return nil, scalarErr
		}
		return json.Marshal(v)
	}

	return nil, protocol.ErrUnknown
}

// decodePayload strictly decodes a JSON statement; unknown fields are rejected.
func decodePayload(payload []byte, stmt interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(stmt); err != nil {
		return newError(errInvalidStatement, "%v", err)
	}
	return nil
}
