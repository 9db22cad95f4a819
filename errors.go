package mkidphoton

import "errors"

// Failure-kind sentinels, one per spec §7 "parameter invalid"/"file
// oversized" error kind that surfaces to the caller as a Go error.
var (
	ErrDirNotFound       = errors.New("mkidphoton: bin directory does not exist")
	ErrIntegrationRange  = errors.New("mkidphoton: integration_time+1 outside [1, 1800]")
	ErrFileOversized     = errors.New("mkidphoton: bin file exceeds the pre-allocated read buffer")
	ErrTruncated         = errors.New("mkidphoton: photon count exceeds the output buffer capacity")
	ErrNoBeamMapEntries  = errors.New("mkidphoton: beam map has no entries")
	ErrInvalidBeamMapDim = errors.New("mkidphoton: beam map dimensions must be positive")
)
