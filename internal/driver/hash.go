package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Digest is a SHA-256 value.
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// combineDigest: H(part1 || part2 ...) with every part length-prefixed so
// adjacent strings cannot collide.
func combineDigest(parts ...[]byte) Digest {
	h := sha256.New()
	var lenBuf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(p)))
		_, _ = h.Write(lenBuf[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// cacheKey identifies one file's lint result: tool version, rule set,
// schema and the file's path and content.
func cacheKey(toolVersion string, ruleSet, schema Digest, path string, content [32]byte) Digest {
	return combineDigest([]byte(toolVersion), ruleSet[:], schema[:], []byte(path), content[:])
}
