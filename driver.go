package mkidphoton

import (
	"fmt"
	"log"
	"math"
)

// fileWindowDriver enumerates and streams the per-second bin files
// spanning an observation window into the packet framer and accumulator,
// per spec §4.5. It holds the single pre-allocated read buffer reused
// across every file in the window (spec §5).
type fileWindowDriver struct {
	vfs       *vfsHandle
	dir       string
	firstFile int64
	nFiles    int
	anchor    observationAnchor
	acc       *Accumulator
	verbose   bool

	readBuffer []byte

	diag Diagnostics
}

// readBufferCapacity is the pre-allocated per-file read buffer size,
// spec §4.5/§5: ceil(1.1 * MaxCntRate * ncol * nrow * 8) bytes.
func readBufferCapacity(ncol, nrow int) int64 {
	bytes := 1.1 * float64(MaxCntRate) * float64(ncol) * float64(nrow) * float64(BytesPerWord)
	return int64(math.Ceil(bytes))
}

// run walks filenames {firstFile+i}.bin for i in [-1, nFiles], i.e. one
// second of slack on each side, streaming each existing file's packets
// into the accumulator. Returns ErrFileOversized if any file exceeds the
// pre-allocated read buffer.
func (d *fileWindowDriver) run() error {
	for i := -1; i <= d.nFiles; i++ {
		fileSecond := d.firstFile + int64(i)
		uri := fmt.Sprintf("%s/%d.bin", d.dir, fileSecond)

		exists, size, err := d.vfs.statFile(uri)
		if err != nil {
			return err
		}
		if !exists {
			d.diag.MissingFiles = append(d.diag.MissingFiles, fileSecond)
			if d.verbose {
				log.Printf("mkidphoton: warning: %s does not exist", uri)
			}
			continue
		}

		if int64(len(d.readBuffer)) < int64(size) {
			return ErrFileOversized
		}

		n, err := d.vfs.readFile(uri, size, d.readBuffer)
		if err != nil {
			return err
		}
		if uint64(n) != size && d.verbose {
			log.Printf("mkidphoton: warning: short read of %s: got %d of %d bytes", uri, n, size)
		}

		d.processFile(d.readBuffer[:n], fileSecond)
	}

	return nil
}

// processFile frames one file's bytes into packets (spec §4.5 step 3)
// and delivers each to decodePacket.
func (d *fileWindowDriver) processFile(buf []byte, fileSecond int64) {
	nWords := len(buf) / BytesPerWord

	firstHeader := -1
	for k := 0; k < nWords; k++ {
		if isHeaderWord(wordAt(buf, k)) {
			firstHeader = k
			break
		}
	}
	if firstHeader < 0 {
		return
	}

	pstart := firstHeader
	for k := firstHeader + 1; k < nWords; k++ {
		if !isHeaderWord(wordAt(buf, k)) {
			continue
		}

		d.decodePacket(buf, pstart, k, fileSecond)
		pstart = k
	}
	// The trailing partial packet from pstart to nWords is discarded
	// (spec §4.5): there's no subsequent header to close it out.
}

// decodePacket decodes the packet occupying words [pstart, pend) of buf —
// word pstart is always a header, words pstart+1..pend-1 are data words
// inheriting its corrected timestamp (spec §4.5 step 4).
func (d *fileWindowDriver) decodePacket(buf []byte, pstart, pend int, fileSecond int64) {
	packetBytes := (pend - pstart) * BytesPerWord
	if packetBytes > MaxPacketBytes {
		d.diag.OversizedPackets++
		if d.verbose {
			log.Printf("mkidphoton: warning: packet too long - %d bytes", packetBytes)
		}
	}

	hdr := decodeHeader(wordAt(buf, pstart))
	corrected := d.anchor.correctWrap(hdr.Timestamp, fileSecond)
	basetime := d.anchor.basetime(corrected)

	if basetime < 0 || basetime >= 2000*int64(d.nFiles) {
		d.diag.OutOfWindowPackets++
		return
	}

	for k := pstart + 1; k < pend; k++ {
		data := decodeData(wordAt(buf, k))
		d.acc.Ingest(basetime, data)
	}
}

// wordAt decodes the big-endian 64-bit word starting at byte index k*8.
func wordAt(buf []byte, k int) uint64 {
	off := k * BytesPerWord
	return uint64(buf[off])<<56 | uint64(buf[off+1])<<48 | uint64(buf[off+2])<<40 |
		uint64(buf[off+3])<<32 | uint64(buf[off+4])<<24 | uint64(buf[off+5])<<16 |
		uint64(buf[off+6])<<8 | uint64(buf[off+7])
}
