// SPDX-License-Identifier: EPL-2.0

// Package render implements the per-block rendering contract and the
// renderers built on it.
//
// # Contract
//
// A Renderer is called once per block by a scheduler that has already run
// every upstream renderer for the same block:
//
//	err := r.Render(iv, streamIn, streamOut, eventIn, eventOut)
//
// streamOut buffers are pre-allocated with iv.SampleCount() samples each;
// eventOut streams are append-only. A renderer either completes the block or
// returns an error; there is no partial result. Caller mistakes (mismatched
// buffer counts or lengths) are rejected before any output is touched and
// wrap block.ErrContractViolation. Impossible input from a collaborator
// wraps block.ErrInternalConsistency.
//
// Renderers are not safe for concurrent use. Each instance belongs to one
// processing node and is driven sequentially.
//
// # Renderers
//
//   - NoteExpander turns notes from a timeline.Query into NoteOn/NoteOff events.
//   - AutomationLane turns a timeline.Lane into ParameterValue events.
//   - RegionPlayer writes audio regions from a TapeStore into output buffers.
//   - GainStage scales input buffers by a gain parameter driven by events.
package render
