package bindings

import "testing"

// These are narrow unit tests over the pure-Go glue in this package (ID
// conversions, error-code classification). They do not exercise the cgo
// call sites themselves, which require a linked libnetcdf and are covered
// instead by the acceptance tests in pkg/netcdf (built against a real
// library at integration time).

func TestHasCode(t *testing.T) {
	if hasCode(nil, -49) {
		t.Fatal("nil error must never match a code")
	}
	err := &Error{Code: -49, msg: "Variable not found"}
	if !hasCode(err, -49) {
		t.Fatal("expected code match")
	}
	if hasCode(err, -43) {
		t.Fatal("unexpected code match")
	}
	if !isENOTVAR(err) {
		t.Fatal("expected isENOTVAR true")
	}
}

func TestToIDsRoundTrip(t *testing.T) {
	ids := []ID{1, 2, 3}
	cs := toCInts(ids)
	back := toIDs(cs)
	if len(back) != len(ids) {
		t.Fatalf("length mismatch: got %d want %d", len(back), len(ids))
	}
	for i := range ids {
		if back[i] != ids[i] {
			t.Fatalf("index %d: got %v want %v", i, back[i], ids[i])
		}
	}
}

func TestOptionsAreDistinctBits(t *testing.T) {
	seen := map[Options]bool{}
	for _, o := range []Options{WRITE, NOCLOBBER, DISKLESS, _64BIT_DATA, CLASSIC, SHARE, NETCDF4, INMEMORY} {
		if seen[o] {
			t.Fatalf("option %v reused", o)
		}
		seen[o] = true
	}
}
