package mkidphoton

import (
	"io"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
)

// vfsHandle wraps the TileDB VFS context needed to read per-second bin
// files uniformly whether binPath is a local directory or an object-store
// URI, mirroring the teacher's Stream abstraction over local/object-store
// GSF files (reader.go's GenericStream, file.go's OpenGSF).
type vfsHandle struct {
	config *tiledb.Config
	ctx    *tiledb.Context
	vfs    *tiledb.VFS
}

// openVFS constructs a TileDB VFS context from an optional config URI. An
// empty configURI falls back to a generic, default-constructed config,
// matching OpenGSF/FindGsf's handling of an unspecified config_uri.
func openVFS(configURI string) (*vfsHandle, error) {
	var (
		config *tiledb.Config
		err    error
	)

	if configURI == "" {
		config, err = tiledb.NewConfig()
	} else {
		config, err = tiledb.LoadConfig(configURI)
	}
	if err != nil {
		return nil, err
	}

	ctx, err := tiledb.NewContext(config)
	if err != nil {
		config.Free()
		return nil, err
	}

	vfs, err := tiledb.NewVFS(ctx, config)
	if err != nil {
		ctx.Free()
		config.Free()
		return nil, err
	}

	return &vfsHandle{config: config, ctx: ctx, vfs: vfs}, nil
}

// Close releases the VFS context's resources.
func (h *vfsHandle) Close() {
	h.vfs.Free()
	h.ctx.Free()
	h.config.Free()
}

// dirExists reports whether uri is a directory the VFS can see.
func (h *vfsHandle) dirExists(uri string) (bool, error) {
	return h.vfs.IsDir(uri)
}

// statFile reports whether uri exists as a file and, if so, its size in
// bytes.
func (h *vfsHandle) statFile(uri string) (exists bool, size uint64, err error) {
	exists, err = h.vfs.IsFile(uri)
	if err != nil || !exists {
		return exists, 0, err
	}

	size, err = h.vfs.FileSize(uri)
	return exists, size, err
}

// readFile reads the full contents of a file already known to be size
// bytes long into buffer, reusing the caller-owned buffer (spec §5: the
// per-file read buffer is allocated once and reused across files). Any
// bytes short of size are left untouched in buffer and n reports the
// bytes actually read, per spec §7's "short read" tolerance.
func (h *vfsHandle) readFile(uri string, size uint64, buffer []byte) (n int, err error) {
	fh, err := h.vfs.Open(uri, tiledb.TILEDB_VFS_READ)
	if err != nil {
		return 0, err
	}
	defer fh.Close()

	n, err = io.ReadFull(fh, buffer[:size])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return n, err
	}

	return n, nil
}
