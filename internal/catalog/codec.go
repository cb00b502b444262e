package catalog

import (
	"encoding/binary"
	"math"
)

// embeddingToBytes encodes a float32 vector as little-endian bytes for
// storage. Nil vectors encode to nil.
func embeddingToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	out := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:(i+1)*4], math.Float32bits(f))
	}
	return out
}

// bytesToEmbedding decodes a stored vector; nil or short input yields nil.
func bytesToEmbedding(b []byte) []float32 {
	if len(b) < 4 {
		return nil
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4 : (i+1)*4]))
	}
	return out
}
