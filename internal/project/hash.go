package project

import "crypto/sha256"

// Digest is a fixed 256-bit content hash, used to key cached compile
// results by source text rather than by file name.
type Digest [32]byte

// HashSource hashes the exact inputs a compile result depends on: the
// source text, the entry point name, and the shader stage/model, so a
// cache hit requires every one of them to match.
func HashSource(text, entryPoint string, shaderType uint8, major, minor uint32) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(text))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(entryPoint))
	_, _ = h.Write([]byte{0, shaderType, byte(major), byte(major >> 8), byte(major >> 16), byte(major >> 24)})
	_, _ = h.Write([]byte{byte(minor), byte(minor >> 8), byte(minor >> 16), byte(minor >> 24)})
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
