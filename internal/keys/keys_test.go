package keys

import "testing"

func TestCellKeyRoundTrip(t *testing.T) {
	key := CellKey(3, 12)
	if key != "3:12" {
		t.Fatalf("unexpected key %q", key)
	}
	x, y, err := ParseCellKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 3 || y != 12 {
		t.Fatalf("round trip mismatch: %d,%d", x, y)
	}
}

func TestParseCellKeyRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "3", "a:b", "3:", ":4", "3:4:5"} {
		if _, _, err := ParseCellKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
