// SPDX-License-Identifier: EPL-2.0

// Package param holds automatable renderer parameters.
package param

import "github.com/ik5/blockrender/event"

// Parameter is a named value changed only through ParameterValue events.
type Parameter struct {
	id    string
	value float64
}

func New(id string, initial float64) *Parameter {
	return &Parameter{id: id, value: initial}
}

func (p *Parameter) ID() string     { return p.id }
func (p *Parameter) Value() float64 { return p.value }
func (p *Parameter) String() string { return p.id }

// Apply scans events in the given order and keeps the last value addressed
// to this parameter. It reports whether any event matched.
// Callers sort events by offset first.
func (p *Parameter) Apply(events []event.Event) bool {
	matched := false
	for _, ev := range events {
		switch ev := ev.(type) {
		case event.ParameterValue:
			if ev.ParameterID == p.id {
				p.value = ev.Value
				matched = true
			}
		case event.NoteOn, event.NoteOff:
		}
	}
	return matched
}
