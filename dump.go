package mkidphoton

// SingleFileDump holds the parallel-array result of ParseSingle, one slot
// per reported photon (spec §4.7). Unlike ExtractPhotons, timestamps are
// microseconds since year-start with no observation re-anchoring, and
// there is no beam-map attribution or gating.
type SingleFileDump struct {
	Baseline   []float32
	Wavelength []float32
	Time       []uint64
	X          []uint16
	Y          []uint16
	Roach      []uint8
}

// ParseSingle decodes one bin file's packets in file order and reports
// them in the parallel arrays of a SingleFileDump, independent of C2/C3/
// C4 (spec §4.7). maxLen bounds the arrays: if the file holds more than
// maxLen photons, positions 0..maxLen-2 hold the first maxLen-1 events and
// position maxLen-1 is repeatedly overwritten, ending up holding the last
// event seen — preserved for bit-compatibility with the reference
// implementation (spec §9), with the source's off-by-one corrected so the
// final slot is maxLen-1 rather than one past the array (see DESIGN.md).
// The return value is the true total photon count.
func ParseSingle(buf []byte, maxLen int) (SingleFileDump, int64) {
	dump := SingleFileDump{
		Baseline:   make([]float32, maxLen),
		Wavelength: make([]float32, maxLen),
		Time:       make([]uint64, maxLen),
		X:          make([]uint16, maxLen),
		Y:          make([]uint16, maxLen),
		Roach:      make([]uint8, maxLen),
	}

	if maxLen == 0 {
		return dump, 0
	}

	nWords := len(buf) / BytesPerWord

	firstHeader := -1
	for k := 0; k < nWords; k++ {
		if isHeaderWord(wordAt(buf, k)) {
			firstHeader = k
			break
		}
	}
	if firstHeader < 0 {
		return dump, 0
	}

	var (
		count    int64
		curTime  uint64
		curRoach uint8
		hdrSeen  bool
	)

	hdr := decodeHeader(wordAt(buf, firstHeader))
	curTime = hdr.Timestamp * HalfMsToUs
	curRoach = hdr.Roach
	hdrSeen = true

	for k := firstHeader + 1; k < nWords; k++ {
		word := wordAt(buf, k)

		if isHeaderWord(word) {
			hdr = decodeHeader(word)
			curTime = hdr.Timestamp * HalfMsToUs
			curRoach = hdr.Roach
			hdrSeen = true
			continue
		}
		if !hdrSeen {
			continue
		}

		data := decodeData(word)

		slot := int(count)
		if slot >= maxLen {
			slot = maxLen - 1
		}

		dump.Baseline[slot] = baselineDegrees(data.BaselineRaw)
		dump.Wavelength[slot] = wavelengthDegrees(data.WavelengthRaw)
		dump.Time[slot] = curTime + uint64(data.TSub)
		dump.X[slot] = data.X
		dump.Y[slot] = data.Y
		dump.Roach[slot] = curRoach

		count++
	}

	return dump, count
}
