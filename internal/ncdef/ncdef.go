// Package ncdef tracks a File's define-mode state (a created file starts in
// define mode, an opened one in data mode, and either toggles via
// redef/enddef) and the exclusive
// mutable-borrow discipline: at most one mutable view may be checked out
// from a File at a time. Go cannot enforce that statically, so this package
// approximates it at runtime.
package ncdef

import (
	"sync"

	"github.com/ncgo/netcdf/internal/nclog"
	"github.com/ncgo/netcdf/pkg/nctypes"
)

// State is one File's define-mode and exclusive-borrow tracker.
type State struct {
	mu         sync.Mutex
	defineMode bool
	borrowed   bool
}

// New returns a State whose initial mode is startsInDefineMode: true for a
// freshly created file, which the C library leaves in define mode, false
// for an opened one.
func New(startsInDefineMode bool) *State {
	return &State{defineMode: startsInDefineMode}
}

// InDefineMode reports the current mode.
func (s *State) InDefineMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defineMode
}

// EnterDefine marks the file as having just called redef. Returns
// ErrKindAlreadyExists-shaped error if already in define mode, matching the
// C library's own nc_redef behavior of erroring on a redundant call.
func (s *State) EnterDefine() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defineMode {
		return &nctypes.Error{Kind: nctypes.ErrKindAlreadyExists, Msg: "already in define mode"}
	}
	s.defineMode = true
	nclog.L.Debug("entered define mode")
	return nil
}

// LeaveDefine marks the file as having just called enddef.
func (s *State) LeaveDefine() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.defineMode {
		return &nctypes.Error{Kind: nctypes.ErrKindNotFound, Msg: "not in define mode"}
	}
	s.defineMode = false
	nclog.L.Debug("left define mode")
	return nil
}

// Borrow checks out the single allowed exclusive mutable view, failing if
// one is already checked out (the File/Group/Variable "Mut" views are
// exclusive for the lifetime of the borrow).
func (s *State) Borrow() (release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.borrowed {
		return nil, &nctypes.Error{Kind: nctypes.ErrKindAlreadyExists, Msg: "a mutable view is already checked out"}
	}
	s.borrowed = true
	return s.release, nil
}

func (s *State) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.borrowed = false
}
