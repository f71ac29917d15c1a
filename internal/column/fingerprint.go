package column

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes a buffer for output cross-checks.
func Fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// FingerprintVar hashes the offsets and bytes of a variable-length column.
func FingerprintVar[O Offset](c VarColumn[O]) uint64 {
	d := xxhash.New()
	_, _ = d.Write(BufferOf(c.Offsets).Data)
	_, _ = d.Write(c.Data)
	return d.Sum64()
}
