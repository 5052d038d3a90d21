// SPDX-License-Identifier: EPL-2.0

// Package blockrender renders timeline tracks one audio block at a time.
//
// A host processes audio in fixed-size blocks. For every block it knows the
// time interval the block covers and how many samples it holds, and asks each
// renderer to produce that block's audio and events. The subpackages provide
// the pieces:
//
//   - block: the Interval a block covers and the error classes
//   - event: NoteOn, NoteOff and ParameterValue events and event streams
//   - timeline: notes, audio regions, clips, tracks and automation lanes
//   - render: the Renderer contract and the renderers
//   - media: decoding region audio and writing WAV files
//   - midiout: converting rendered events to MIDI
//
// # Strips
//
// A Strip wires the renderers of one track together so a host can drive the
// whole track with a single call per block:
//
//	lib := media.NewLibrary("samples", media.NewDefaultRegistry(), 2)
//	strip := blockrender.NewStrip(track, lib, 2, 1.0)
//
//	iv, _ := block.At(48000, first, 512)
//	events, err := strip.RenderBlock(iv, out)
//
// # Bouncing
//
// Bounce renders a whole track offline into a WAV file and a MIDI file:
//
//	opts := blockrender.DefaultOptions()
//	opts.Store = lib
//	res, err := blockrender.BounceFiles(ctx, track, "out", opts)
//
// Errors wrapping block.ErrInternalConsistency mean a renderer was handed
// impossible input and the engine is faulty; block.IsFault tells them apart
// from ordinary failures such as a missing sample file.
package blockrender
