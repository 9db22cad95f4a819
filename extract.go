package mkidphoton

// ExtractPhotons is the primary operation (spec §6.3): it decodes the
// per-second bin files in dir spanning [startTimestamp, startTimestamp+
// integrationTime] (widened by one second on each side), attributes each
// photon to a pixel via beamMap, and writes the result in beam-map order
// into out.
//
// It returns the true photon count. If that count exceeds len(out), out
// is filled to capacity and ErrTruncated is returned alongside the true
// count — callers that want the source's documented sizing contract
// instead (size out from the total bytes in the window, one photon per
// 8-byte word at most) can simply ignore ErrTruncated and compare the
// returned count against len(out) themselves.
//
// configURI optionally names a TileDB config file governing access to
// dir (e.g. object-store credentials); an empty string uses a generic
// default config, local-filesystem directories need nothing further.
func ExtractPhotons(
	dir string,
	startTimestamp int64,
	integrationTime int,
	beamMap []int64,
	ncol, nrow int,
	out []Photon,
	configURI string,
	verbose bool,
) (int64, Diagnostics, error) {
	nFiles := integrationTime + 1
	if nFiles < MinIntegrationFiles || nFiles > MaxIntegrationFiles {
		return -1, Diagnostics{}, ErrIntegrationRange
	}

	vfs, err := openVFS(configURI)
	if err != nil {
		return -1, Diagnostics{}, err
	}
	defer vfs.Close()

	dirExists, err := vfs.dirExists(dir)
	if err != nil {
		return -1, Diagnostics{}, err
	}
	if !dirExists {
		return -1, Diagnostics{}, ErrDirNotFound
	}

	entries := DecodeBeamMapEntries(beamMap)
	image, err := BuildBeamImage(entries, ncol, nrow)
	if err != nil {
		return -1, Diagnostics{}, err
	}

	acc := NewAccumulator(image, true, nFiles)
	anchor := newObservationAnchor(startTimestamp)

	driver := &fileWindowDriver{
		vfs:        vfs,
		dir:        dir,
		firstFile:  startTimestamp,
		nFiles:     nFiles,
		anchor:     anchor,
		acc:        acc,
		verbose:    verbose,
		readBuffer: make([]byte, readBufferCapacity(ncol, nrow)),
	}

	if err := driver.run(); err != nil {
		return -1, driver.diag, err
	}

	total, err := Materialize(entries, image, acc, out)

	diag := driver.diag
	diag.fill(image, acc, entries)

	if err != nil {
		// ErrTruncated is the only error Materialize returns; it is
		// informational, not a call failure (see DESIGN.md).
		return total, diag, err
	}

	return total, diag, nil
}
