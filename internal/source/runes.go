package source

import (
	"unicode/utf8"

	"fortio.org/safecast"
)

// ByteOffset maps a rune offset (as reported by parsers that count code points)
// to a byte offset into Content. Offsets past the end clamp to len(Content).
func (f *File) ByteOffset(runeOff int) uint32 {
	if runeOff <= 0 {
		return 0
	}
	if f.isASCII() {
		return f.clamp(runeOff)
	}
	if f.runeIdx == nil {
		f.runeIdx = buildRuneIndex(f.Content)
	}
	if runeOff >= len(f.runeIdx) {
		return f.clamp(len(f.Content))
	}
	return f.runeIdx[runeOff]
}

// RuneSpan builds a Span from a rune-based half-open range.
func (f *File) RuneSpan(start, end int) Span {
	return Span{File: f.ID, Start: f.ByteOffset(start), End: f.ByteOffset(end)}
}

func (f *File) isASCII() bool {
	if f.ascii == 0 {
		f.ascii = 1
		for _, b := range f.Content {
			if b >= utf8.RuneSelf {
				f.ascii = -1
				break
			}
		}
	}
	return f.ascii > 0
}

func (f *File) clamp(n int) uint32 {
	if n > len(f.Content) {
		n = len(f.Content)
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(err)
	}
	return v
}

// buildRuneIndex returns the byte offset of every rune start plus a final
// entry for len(content).
func buildRuneIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, utf8.RuneCount(content)+1)
	for i := 0; i < len(content); {
		idx = append(idx, uint32(i)) // #nosec G115 -- bounded by len(content)
		_, size := utf8.DecodeRune(content[i:])
		i += size
	}
	return append(idx, uint32(len(content))) // #nosec G115
}
