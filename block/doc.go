// SPDX-License-Identifier: EPL-2.0

// Package block defines the time span a renderer is asked to fill and the
// error classes every renderer reports with.
//
// # Intervals
//
// An Interval describes one block in two units at once: project time in
// seconds and the number of samples the block holds.
//
//	iv, err := block.NewInterval(1.0, 2.0, 100)
//	offset, err := iv.SamplePosition(1.5) // 50
//
// Both ends of an interval are inclusive. An event that lies exactly on the
// end of a block is positioned at offset SampleCount(), and an event exactly
// on the start is positioned at offset 0.
//
// Offsets are computed as
//
//	round(sampleCount * (t - start) / length)
//
// using round-half-to-even.
//
// # Errors
//
// Two classes of failure exist:
//   - ErrInternalConsistency: a collaborator handed the renderer something that
//     must never happen (content outside the block, zero-length block, an offset
//     out of bounds). These are engine faults; use IsFault to detect them.
//   - ErrContractViolation: the caller passed mismatched buffers or streams.
//     These are detected before any output is written.
//
// Concrete errors wrap one of the two sentinels, so callers use errors.Is:
//
//	if err := r.Render(iv, in, out, evIn, evOut); block.IsFault(err) {
//	    // report an engine fault
//	}
package block
