package mkidphoton

import "testing"

func buildMaterializeFixture(t *testing.T) ([]BeamMapEntry, *BeamImage, *Accumulator) {
	t.Helper()

	entries := []BeamMapEntry{
		{ResID: 1, Flag: 0, X: 0, Y: 1},
		{ResID: 2, Flag: 0, X: 1, Y: 0},
	}
	img, err := BuildBeamImage(entries, 2, 2)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	acc := NewAccumulator(img, true, 1)
	acc.Ingest(0, DataWord{X: 0, Y: 1, TSub: 1})
	acc.Ingest(0, DataWord{X: 0, Y: 1, TSub: 2})
	acc.Ingest(0, DataWord{X: 1, Y: 0, TSub: 3})

	return entries, img, acc
}

func TestMaterializeConcatenatesInEntryOrder(t *testing.T) {
	entries, img, acc := buildMaterializeFixture(t)

	out := make([]Photon, 10)
	total, err := Materialize(entries, img, acc, out)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}

	out = out[:total]
	if out[0].ResID != 1 || out[1].ResID != 1 || out[2].ResID != 2 {
		t.Errorf("got ResIDs %d,%d,%d, want 1,1,2 (entry order)", out[0].ResID, out[1].ResID, out[2].ResID)
	}
}

func TestMaterializeSkipsZeroZeroSentinel(t *testing.T) {
	entries := []BeamMapEntry{{ResID: 9, Flag: 0, X: 0, Y: 0}}
	img, err := BuildBeamImage(entries, 1, 1)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}

	acc := NewAccumulator(img, true, 1)
	acc.Ingest(0, DataWord{X: 0, Y: 0})

	out := make([]Photon, 10)
	total, err := Materialize(entries, img, acc, out)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0 ((0,0) is always skipped)", total)
	}
}

func TestMaterializeTruncation(t *testing.T) {
	entries, img, acc := buildMaterializeFixture(t)

	out := make([]Photon, 2)
	total, err := Materialize(entries, img, acc, out)
	if err != ErrTruncated {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3 (true count even when truncated)", total)
	}
	if out[0].ResID != 1 || out[1].ResID != 1 {
		t.Errorf("truncated output = %+v, want first two entry-1 events", out)
	}
}

func TestMaterializeEmptyAccumulator(t *testing.T) {
	entries := []BeamMapEntry{{ResID: 1, Flag: 0, X: 0, Y: 1}}
	img, err := BuildBeamImage(entries, 1, 2)
	if err != nil {
		t.Fatalf("BuildBeamImage: %v", err)
	}
	acc := NewAccumulator(img, true, 1)

	out := make([]Photon, 10)
	total, err := Materialize(entries, img, acc, out)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
}
