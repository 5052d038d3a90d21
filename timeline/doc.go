// SPDX-License-Identifier: EPL-2.0

// Package timeline holds the musical content renderers read from: tracks,
// clips, notes, audio regions and automation lanes.
//
// All times are absolute project seconds. Content is a closed set of
// variants (Note and AudioRegion); consumers dispatch with an exhaustive
// type switch.
//
// A Track answers overlap queries for the renderers:
//
//	for _, c := range track.Overlapping(iv.Start(), iv.End()) {
//	    switch c := c.(type) {
//	    case timeline.Note:
//	    case timeline.AudioRegion:
//	    }
//	}
//
// Overlap is inclusive at both ends: content that ends exactly when the
// range starts, or starts exactly when it ends, is returned.
package timeline
