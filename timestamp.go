package mkidphoton

import "time"

// observationAnchor carries the per-call time-base state that the
// reference implementation keeps at file scope (tstart, tsOffs) — spec
// §9 calls this out explicitly as state that must be confined to the call
// frame rather than kept globally.
type observationAnchor struct {
	// yearStartUTC is the Unix-epoch-seconds timestamp of Jan 1 00:00 UTC
	// of the year containing startTimestamp.
	yearStartUTC int64
	// tstart is the observation start, in half-ms since yearStartUTC.
	tstart int64
}

// newObservationAnchor computes the year anchor and tstart for an
// observation starting at startTimestamp (Unix epoch seconds, UTC), per
// spec §4.3.
func newObservationAnchor(startTimestamp int64) observationAnchor {
	start := time.Unix(startTimestamp, 0).UTC()
	yearStart := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearStartUTC := yearStart.Unix()

	return observationAnchor{
		yearStartUTC: yearStartUTC,
		tstart:       (startTimestamp - yearStartUTC) * 2000,
	}
}

// correctWrap adjusts a header's raw 36-bit timestamp for 36-bit/year
// rollover mismatch, per spec §4.3's FixOverflowTimestamps formula, using
// the filename-second of the file the header was read from.
func (a observationAnchor) correctWrap(rawTimestamp uint64, fileNameTime int64) uint64 {
	nWraps := (fileNameTime - a.yearStartUTC - int64(rawTimestamp/2000) + WrapFudge) / WrapPeriodSeconds
	return uint64(int64(rawTimestamp) + 2000*nWraps*WrapPeriodSeconds)
}

// basetime returns a corrected header timestamp relative to tstart, in
// half-milliseconds. The caller must check the result against
// [0, 2000*nFiles) before accepting the packet (spec §4.3).
func (a observationAnchor) basetime(correctedTimestamp uint64) int64 {
	return int64(correctedTimestamp) - a.tstart
}
