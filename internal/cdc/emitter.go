package cdc

import (
	"encoding/json"
	v1 "github.com/litetable/litetable-cdc/go/v1"
	"github.com/litetable/litetable-sql/internal/value"
	"github.com/rs/zerolog/log"
	"time"
)

// Event announces one stored row. Columns and Values are in schema order.
type Event struct {
	Table     string
	RowID     string
	Columns   []string
	Values    []value.Value
	Timestamp time.Time
}

// Emit queues an event for every subscriber. It never blocks: when the buffer is full the
// event is dropped.
func (s *Server) Emit(e *Event) {
	select {
	case s.events <- e:
	default:
		log.Warn().Str("table", e.Table).Str("row", e.RowID).Msg("CDC buffer full, dropping event")
	}
}

func (s *Server) dispatchLoop() {
	for {
		select {
		case <-s.procCtx.Done():
			return
		case e := <-s.events:
			s.dispatch(e)
		}
	}
}

// dispatch sends the event to every subscriber, dropping subscribers whose stream fails.
func (s *Server) dispatch(e *Event) {
	messages := toCDCEvents(e)

	s.streamMux.Lock()
	defer s.streamMux.Unlock()

	for id, stream := range s.streams {
		for _, msg := range messages {
			if err := stream.Send(msg); err != nil {
				log.Warn().Err(err).Str("client", id).Msg("removing gRPC stream due to send error")
				delete(s.streams, id)
				break
			}
		}
	}
}

// toCDCEvents maps a row onto the family/qualifier shape of the CDC stream: the table is the
// family, each column a qualifier and the row ID the row key.
func toCDCEvents(e *Event) []*v1.CDCEvent {
	out := make([]*v1.CDCEvent, 0, len(e.Columns))
	for i, column := range e.Columns {
		if i >= len(e.Values) {
			break
		}

		encoded, err := json.Marshal(e.Values[i])
		if err != nil {
			log.Warn().Err(err).Str("column", column).Msg("failed to encode CDC value")
			continue
		}

		out = append(out, &v1.CDCEvent{
			Operation:     v1.LitetableOperation_WRITE,
			RowKey:        e.RowID,
			Family:        e.Table,
			Qualifier:     column,
			Value:         encoded,
			TimestampUnix: e.Timestamp.UnixNano(),
		})
	}
	return out
}
