// SPDX-License-Identifier: EPL-2.0

// Package event defines the sample-stamped messages renderers exchange
// inside one block.
//
// Event is a closed set of variants: NoteOn, NoteOff and ParameterValue.
// Consumers dispatch with a type switch:
//
//	switch ev := ev.(type) {
//	case event.NoteOn:
//	case event.NoteOff:
//	case event.ParameterValue:
//	}
//
// Every event carries an offset relative to the start of the block it was
// produced for, in [0, SampleCount] inclusive. Events do not outlive the
// block.
//
// A Stream is an append-only sequence of events. Producers append to their
// output streams, consumers read their input streams and never modify them.
package event
