package badgerlib

import "fmt"

// Key layout:
//
//	m                → msgpack manifest record (descriptor, format,
//	                   phoneme symbols, per-code unit counts)
//	u:{code}:{index} → msgpack unit record (context, prosody, wave length)
//	w:{code}:{index} → raw PCM segment bytes
//
// Codes and indices are rendered in decimal; lookups are always by exact
// key, so lexicographic ordering of the numeric parts does not matter.

var manifestKey = []byte("m")

// unitKey builds the key of one unit's metadata record.
func unitKey(code, index int) []byte {
	return []byte(fmt.Sprintf("u:%d:%d", code, index))
}

// waveKey builds the key of one unit's PCM segment.
func waveKey(code, index int) []byte {
	return []byte(fmt.Sprintf("w:%d:%d", code, index))
}
