package mkidphoton

import (
	"github.com/samber/lo"
)

// Diagnostics summarises the "log and continue" conditions spec §7 calls
// out (missing files, oversized packets, out-of-window packets) plus a
// post-hoc view of per-pixel event counts, grounded on the teacher's
// QualityInfo/QInfo summary (qa.go) but built over pixel photon counts
// rather than ping beam counts.
type Diagnostics struct {
	// MissingFiles lists the per-second filenames expected within the
	// window that were not found on disk (spec §7 "file missing mid-
	// window: log and continue").
	MissingFiles []int64

	// OversizedPackets counts packets larger than MaxPacketBytes that
	// were still processed (spec §4.5/§7).
	OversizedPackets int

	// OutOfWindowPackets counts packets whose corrected basetime fell
	// outside [0, 2000*nFiles) and were dropped in their entirety
	// (spec §4.3).
	OutOfWindowPackets int

	// MinPixelCount and MaxPixelCount are the domain over assigned pixels
	// that received at least one event.
	MinPixelCount uint32
	MaxPixelCount uint32

	// ConsistentPixelCounts reports whether every assigned, populated
	// pixel received the same number of events — a quick way to notice a
	// lopsided beam map or a roach that stopped reporting mid-window.
	ConsistentPixelCounts bool

	// PopulatedPixels is the number of assigned pixels that received at
	// least one event.
	PopulatedPixels int
}

// fill populates the per-pixel summary fields once accumulation has
// finished, mirroring QInfo's pass over FileInfo.Ping_Info.
func (d *Diagnostics) fill(image *BeamImage, acc *Accumulator, entries []BeamMapEntry) {
	counts := make([]uint32, 0, len(entries))

	for _, e := range entries {
		if e.X < 0 || e.X >= int64(image.Cols) || e.Y < 0 || e.Y >= int64(image.Rows) {
			continue
		}

		x, y := int(e.X), int(e.Y)
		if !image.assigned(x, y) {
			continue
		}

		if c := acc.count(x, y); c > 0 {
			counts = append(counts, c)
		}
	}

	d.PopulatedPixels = len(counts)
	if len(counts) == 0 {
		return
	}

	d.MinPixelCount = lo.Min(counts)
	d.MaxPixelCount = lo.Max(counts)
	d.ConsistentPixelCounts = d.MinPixelCount == d.MaxPixelCount
}
