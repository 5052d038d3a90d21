// SPDX-License-Identifier: EPL-2.0

package event

// Stream is an ordered, append-only list of events for one block.
type Stream struct {
	events []Event
}

func NewStream(capacity int) *Stream {
	return &Stream{events: make([]Event, 0, capacity)}
}

// Append adds events at the end of the stream.
func (s *Stream) Append(events ...Event) {
	s.events = append(s.events, events...)
}

// Events returns the stream's contents. The slice must not be modified.
func (s *Stream) Events() []Event { return s.events }

func (s *Stream) Len() int { return len(s.events) }

// Clear empties the stream for reuse in the next block, keeping its storage.
func (s *Stream) Clear() {
	clear(s.events)
	s.events = s.events[:0]
}

// Merge flattens streams in order and sorts the result by offset.
// Ties keep arrival order: earlier streams first, then position in stream.
func Merge(streams []*Stream) []Event {
	total := 0
	for _, s := range streams {
		total += s.Len()
	}
	if total == 0 {
		return nil
	}

	all := make([]Event, 0, total)
	for _, s := range streams {
		all = append(all, s.events...)
	}
	Sort(all)

	return all
}
