package source

import "testing"

func TestByteOffsetASCII(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("s.graphql", []byte("type A")))
	if got := f.ByteOffset(5); got != 5 {
		t.Errorf("ByteOffset(5) = %d", got)
	}
	if got := f.ByteOffset(100); got != 6 {
		t.Errorf("ByteOffset past end = %d, want 6", got)
	}
}

func TestByteOffsetMultibyte(t *testing.T) {
	fs := NewFileSet()
	// "é" is two bytes, "😀" four
	f := fs.Get(fs.AddVirtual("s.graphql", []byte(`"é😀" type A`)))

	tests := []struct {
		runeOff int
		want    uint32
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 7},
		{5, 9},
		{11, 15},
	}
	for _, tt := range tests {
		if got := f.ByteOffset(tt.runeOff); got != tt.want {
			t.Errorf("ByteOffset(%d) = %d, want %d", tt.runeOff, got, tt.want)
		}
	}

	sp := f.RuneSpan(10, 11)
	if f.Text(sp) != "A" {
		t.Errorf("RuneSpan text = %q", f.Text(sp))
	}
}
