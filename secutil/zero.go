// Package secutil provides best-effort memory-wipe helpers for secret
// material (shared secrets, session keys, private cert fields),
// generalized from fixed 32-byte keys to arbitrary-length slices.
package secutil

import "runtime"

// Zero wipes a byte slice in place. The loop form (rather than a single
// built-in call) keeps the compiler from eliding it, and KeepAlive
// prevents the GC from collecting data before the zeroing completes.
func Zero(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// ZeroAll wipes every slice given, in order.
func ZeroAll(slices ...[]byte) {
	for _, s := range slices {
		Zero(s)
	}
}

// IsZeroed reports whether every byte in data is zero. Intended for test
// assertions only: checking this in production code leaks timing
// information about the content of a secret.
func IsZeroed(data []byte) bool {
	if data == nil {
		return false
	}
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
