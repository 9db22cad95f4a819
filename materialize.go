package mkidphoton

// Materialize walks entries in their original order, concatenating each
// assigned, in-window pixel's accumulated events into out, per spec §4.6.
// It returns the true total photon count; if that exceeds len(out), the
// output is truncated to len(out) and ErrTruncated is returned alongside
// the true count (see DESIGN.md's truncation-policy decision).
func Materialize(entries []BeamMapEntry, image *BeamImage, acc *Accumulator, out []Photon) (int64, error) {
	var (
		total     int64
		written   int
		truncated bool
	)

	for _, e := range entries {
		if e.X == 0 && e.Y == 0 {
			continue
		}
		if e.X < 0 || e.X >= int64(image.Cols) || e.Y < 0 || e.Y >= int64(image.Rows) {
			continue
		}

		x, y := int(e.X), int(e.Y)
		if !image.assigned(x, y) {
			continue
		}

		count := acc.count(x, y)
		if count == 0 {
			continue
		}
		total += int64(count)

		if truncated {
			continue
		}

		events := acc.events(x, y)
		room := len(out) - written
		if room <= 0 {
			truncated = true
			continue
		}
		if int(count) > room {
			events = events[:room]
			truncated = true
		}

		written += copy(out[written:], events)
	}

	if truncated {
		return total, ErrTruncated
	}

	return total, nil
}
