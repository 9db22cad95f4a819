package mkidphoton

// Photon is a decoded photon event, attributed to a detector pixel via
// the beam map (spec §3).
type Photon struct {
	ResID      uint32
	Time       uint32
	Wavelength float32
	Baseline   float32
}

// pixelBuffer is a per-pixel growable photon buffer. Capacity grows in
// MaxCntRate-sized chunks (spec §3/§4.4); Count is the number of events
// actually written into Events so far.
type pixelBuffer struct {
	Events []Photon
	Count  uint32
}

// grow extends the buffer's capacity when Count is about to cross a
// MaxCntRate boundary, per spec §4.4 step 3. The growth target is
// MaxCntRate * (ceil(count/MaxCntRate) + 1) slots.
func (p *pixelBuffer) grow() {
	if p.Count%MaxCntRate != MaxCntRate-2 {
		return
	}

	chunks := (p.Count + MaxCntRate - 1) / MaxCntRate
	target := MaxCntRate * (chunks + 1)

	grown := make([]Photon, target)
	copy(grown, p.Events[:p.Count])
	p.Events = grown
}

// append writes ph into the next free slot and increments Count. It calls
// grow first so capacity never runs out mid-chunk.
func (p *pixelBuffer) append(ph Photon) {
	p.grow()
	p.Events[p.Count] = ph
	p.Count++
}

// Accumulator maintains one pixelBuffer per in-range, assigned pixel,
// gated by a BeamImage. It is owned exclusively by a single ExtractPhotons
// call and holds no state shared across calls (spec §5).
type Accumulator struct {
	image    *BeamImage
	mapflag  bool
	buffers  [][]*pixelBuffer
	nWindows int64 // number of files spanning the requested window
}

// NewAccumulator constructs an Accumulator gated by image. mapflag mirrors
// the reference implementation's mapflag switch: when true, only pixels
// with Flag==0 admit events (spec §4.4 step 2).
func NewAccumulator(image *BeamImage, mapflag bool, nFiles int) *Accumulator {
	buffers := make([][]*pixelBuffer, image.Cols)
	for x := range buffers {
		buffers[x] = make([]*pixelBuffer, image.Rows)
	}

	return &Accumulator{
		image:    image,
		mapflag:  mapflag,
		buffers:  buffers,
		nWindows: int64(nFiles),
	}
}

// Ingest appends one decoded data word to its pixel's buffer, subject to
// the bounds and gating checks of spec §4.4. headerBasetime is the
// corrected half-ms basetime of the data word's governing header.
func (a *Accumulator) Ingest(headerBasetime int64, d DataWord) {
	x, y := int(d.X), int(d.Y)

	if !a.image.inBounds(x, y) {
		return
	}
	if !a.image.assigned(x, y) {
		return
	}
	if a.mapflag && a.image.Flag[x][y] > 0 {
		return
	}

	buf := a.buffers[x][y]
	if buf == nil {
		// Lazily allocated only for pixels that actually receive an
		// event; unassigned pixels never get here because of the
		// assigned check above, but an assigned, gated-open pixel may
		// still have seen nothing yet.
		buf = &pixelBuffer{Events: make([]Photon, MaxCntRate)}
		a.buffers[x][y] = buf
	}

	buf.append(Photon{
		ResID:      a.image.ResID[x][y],
		Time:       uint32(headerBasetime*HalfMsToUs + int64(d.TSub)),
		Wavelength: wavelengthDegrees(d.WavelengthRaw),
		Baseline:   baselineDegrees(d.BaselineRaw),
	})
}

// count returns the number of events recorded for pixel (x, y).
func (a *Accumulator) count(x, y int) uint32 {
	if buf := a.buffers[x][y]; buf != nil {
		return buf.Count
	}
	return 0
}

// events returns the recorded events for pixel (x, y) in append order.
func (a *Accumulator) events(x, y int) []Photon {
	if buf := a.buffers[x][y]; buf != nil {
		return buf.Events[:buf.Count]
	}
	return nil
}
