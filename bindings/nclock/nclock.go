// Package nclock implements the Serialization Lock: the single process-wide
// mutex that linearizes every call into the netCDF-C library. netCDF-C (and
// the HDF5 layer it links against for netCDF-4 files) is not thread-safe;
// every exported entry point in bindings acquires this lock for the
// duration of its C call (or the short fixed sequence of C calls it makes)
// and releases it when it returns.
//
// A re-entrant lock would also satisfy the contract, but a plain mutex is
// sufficient here: nothing above this package ever calls back into bindings
// while already holding it, so recursive acquisition never occurs.
package nclock

import "sync"

var mu sync.Mutex

// Acquire takes the lock and returns a function that releases it, so call
// sites can write `defer nclock.Acquire()()`.
func Acquire() func() {
	mu.Lock()
	return mu.Unlock
}
