package mkidphoton

import "testing"

func TestBuildBeamImageDefaults(t *testing.T) {
	img, err := BuildBeamImage(nil, 4, 3)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			if img.ResID[x][y] != unassignedResID {
				t.Errorf("ResID[%d][%d] = %#x, want sentinel", x, y, img.ResID[x][y])
			}
			if img.Flag[x][y] != 1 {
				t.Errorf("Flag[%d][%d] = %d, want 1", x, y, img.Flag[x][y])
			}
		}
	}
}

func TestBuildBeamImageSkipsOutOfBounds(t *testing.T) {
	entries := []BeamMapEntry{
		{ResID: 1, Flag: 0, X: -1, Y: 0},
		{ResID: 2, Flag: 0, X: 0, Y: -1},
		{ResID: 3, Flag: 0, X: 10, Y: 0},
		{ResID: 4, Flag: 0, X: 0, Y: 10},
	}

	img, err := BuildBeamImage(entries, 10, 10)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	if img.ResID[0][0] != unassignedResID {
		t.Errorf("expected (0,0) to remain unassigned, got resID %d", img.ResID[0][0])
	}
}

func TestBuildBeamImageFlagClamp(t *testing.T) {
	entries := []BeamMapEntry{
		{ResID: 1, Flag: 0, X: 0, Y: 0},
		{ResID: 2, Flag: 1, X: 1, Y: 0},
		{ResID: 3, Flag: 5, X: 2, Y: 0},
	}

	img, err := BuildBeamImage(entries, 3, 1)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	if img.Flag[0][0] != 0 {
		t.Errorf("Flag[0][0] = %d, want 0", img.Flag[0][0])
	}
	if img.Flag[1][0] != 1 {
		t.Errorf("Flag[1][0] = %d, want 1", img.Flag[1][0])
	}
	if img.Flag[2][0] != 2 {
		t.Errorf("Flag[2][0] = %d, want 2 (clamped)", img.Flag[2][0])
	}
}

func TestBuildBeamImageLaterEntryWins(t *testing.T) {
	entries := []BeamMapEntry{
		{ResID: 1, Flag: 0, X: 0, Y: 0},
		{ResID: 2, Flag: 1, X: 0, Y: 0},
	}

	img, err := BuildBeamImage(entries, 1, 1)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	if img.ResID[0][0] != 2 {
		t.Errorf("ResID[0][0] = %d, want 2 (later entry should win)", img.ResID[0][0])
	}
	if img.Flag[0][0] != 1 {
		t.Errorf("Flag[0][0] = %d, want 1 (later entry should win)", img.Flag[0][0])
	}
}

func TestBuildBeamImageInvalidDims(t *testing.T) {
	if _, err := BuildBeamImage(nil, 0, 1); err != ErrInvalidBeamMapDim {
		t.Errorf("expected ErrInvalidBeamMapDim for ncol=0, got %v", err)
	}
	if _, err := BuildBeamImage(nil, 1, -1); err != ErrInvalidBeamMapDim {
		t.Errorf("expected ErrInvalidBeamMapDim for nrow<0, got %v", err)
	}
}

func TestDecodeBeamMapEntries(t *testing.T) {
	flat := []int64{42, 0, 3, 4, 43, 1, 5, 6}
	entries := DecodeBeamMapEntries(flat)

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0] != (BeamMapEntry{ResID: 42, Flag: 0, X: 3, Y: 4}) {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1] != (BeamMapEntry{ResID: 43, Flag: 1, X: 5, Y: 6}) {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}
