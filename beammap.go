package mkidphoton

// BeamMapEntry is one row of the flat beam-map input (spec §6.2): a
// detector resource id, a quality flag, and its assigned pixel coordinate.
type BeamMapEntry struct {
	ResID uint32
	Flag  uint32
	X     int64
	Y     int64
}

// DecodeBeamMapEntries unpacks the flat array of 4*N signed 64-bit
// integers described in spec §6.2 into BeamMapEntry values, preserving
// order (order matters: later entries win ties in BuildBeamImage, and
// Materialize walks entries in this same order).
func DecodeBeamMapEntries(flat []int64) []BeamMapEntry {
	n := len(flat) / 4
	entries := make([]BeamMapEntry, n)
	for i := 0; i < n; i++ {
		entries[i] = BeamMapEntry{
			ResID: uint32(flat[4*i]),
			Flag:  uint32(flat[4*i+1]),
			X:     flat[4*i+2],
			Y:     flat[4*i+3],
		}
	}
	return entries
}

// BeamImage holds the two 2D pixel lookup tables built from a beam map:
// ResID (detector resource id per pixel, sentinel unassignedResID when no
// pixel is assigned) and Flag (quality flag, clamped to {0,1,2}).
type BeamImage struct {
	Cols, Rows int
	ResID      [][]uint32
	Flag       [][]uint32
}

// BuildBeamImage constructs a BeamImage from a flat beam-map entry list,
// per spec §4.2. ResID starts at the sentinel 0xFFFFFFFF and Flag starts
// at 1; entries with out-of-bounds (x, y) are silently skipped, and a
// later entry wins ties on the same pixel.
func BuildBeamImage(entries []BeamMapEntry, ncol, nrow int) (*BeamImage, error) {
	if ncol <= 0 || nrow <= 0 {
		return nil, ErrInvalidBeamMapDim
	}

	img := &BeamImage{
		Cols:  ncol,
		Rows:  nrow,
		ResID: make([][]uint32, ncol),
		Flag:  make([][]uint32, ncol),
	}

	for x := 0; x < ncol; x++ {
		img.ResID[x] = make([]uint32, nrow)
		img.Flag[x] = make([]uint32, nrow)
		for y := 0; y < nrow; y++ {
			img.ResID[x][y] = unassignedResID
			img.Flag[x][y] = 1
		}
	}

	for _, e := range entries {
		if e.X < 0 || e.X >= int64(ncol) || e.Y < 0 || e.Y >= int64(nrow) {
			continue
		}

		flag := e.Flag
		if flag > 1 {
			flag = 2
		}

		img.ResID[e.X][e.Y] = e.ResID
		img.Flag[e.X][e.Y] = flag
	}

	return img, nil
}

// assigned reports whether pixel (x, y) has a non-sentinel resID.
func (b *BeamImage) assigned(x, y int) bool {
	return b.ResID[x][y] != unassignedResID
}

// inBounds reports whether (x, y) lies within the beam image.
func (b *BeamImage) inBounds(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}
