// Package state holds the view state of a declutter client and the pure
// transition function that drives it.
package state

import (
	"github.com/yokitheyo/declutter/internal/model"
)

type State struct {
	Directory string
	Files     []model.FileEntry
	TotalSize int64
	Loading   bool
	Err       string
	// Stale is set after a cleanup changed the directory and cleared by the
	// next successful fetch.
	Stale bool

	Cleanup CleanupModal
}

// CleanupModal tracks one scan then execute round trip.
type CleanupModal struct {
	Open      bool
	Filter    model.CleanupFilter
	Scanning  bool
	Scan      *model.ScanResponse
	Executing bool
	Result    *model.CleanupResponse
	Err       string
}

// CanExecute reports whether a scan found something and nothing is in flight.
func (m CleanupModal) CanExecute() bool {
	return m.Open && !m.Scanning && !m.Executing && m.Scan != nil && m.Scan.Count > 0
}

type Event interface{ event() }

type (
	FetchStarted     struct{ Directory string }
	FetchSucceeded   struct{ Files []model.FileEntry }
	FetchFailed      struct{ Err error }
	ModalOpened      struct{}
	ModalClosed      struct{}
	ScanStarted      struct{ Filter model.CleanupFilter }
	ScanSucceeded    struct{ Result model.ScanResponse }
	ScanFailed       struct{ Err error }
	ExecuteStarted   struct{}
	ExecuteSucceeded struct{ Result model.CleanupResponse }
	ExecuteFailed    struct{ Err error }
)

func (FetchStarted) event()     {}
func (FetchSucceeded) event()   {}
func (FetchFailed) event()      {}
func (ModalOpened) event()      {}
func (ModalClosed) event()      {}
func (ScanStarted) event()      {}
func (ScanSucceeded) event()    {}
func (ScanFailed) event()       {}
func (ExecuteStarted) event()   {}
func (ExecuteSucceeded) event() {}
func (ExecuteFailed) event()    {}

// Reduce returns the state after ev. s is never modified; events that make
// no sense in the current state are ignored.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case FetchStarted:
		s.Directory = ev.Directory
		s.Loading = true
		s.Err = ""

	case FetchSucceeded:
		if !s.Loading {
			return s
		}
		s.Loading = false
		s.Stale = false
		s.Files = ev.Files
		if s.Files == nil {
			s.Files = []model.FileEntry{}
		}
		s.TotalSize = model.TotalSize(s.Files)

	case FetchFailed:
		if !s.Loading {
			return s
		}
		s.Loading = false
		s.Files = []model.FileEntry{}
		s.TotalSize = 0
		s.Err = errText(ev.Err)

	case ModalOpened:
		if s.Cleanup.Open {
			return s
		}
		s.Cleanup = CleanupModal{Open: true}

	case ModalClosed:
		if s.Cleanup.Executing {
			return s
		}
		s.Cleanup = CleanupModal{}

	case ScanStarted:
		if !s.Cleanup.Open || s.Cleanup.Executing {
			return s
		}
		s.Cleanup = CleanupModal{Open: true, Filter: ev.Filter, Scanning: true}

	case ScanSucceeded:
		if !s.Cleanup.Scanning {
			return s
		}
		res := ev.Result
		s.Cleanup.Scanning = false
		s.Cleanup.Scan = &res

	case ScanFailed:
		if !s.Cleanup.Scanning {
			return s
		}
		s.Cleanup.Scanning = false
		s.Cleanup.Err = errText(ev.Err)

	case ExecuteStarted:
		if !s.Cleanup.CanExecute() {
			return s
		}
		s.Cleanup.Executing = true
		s.Cleanup.Err = ""

	case ExecuteSucceeded:
		if !s.Cleanup.Executing {
			return s
		}
		res := ev.Result
		s.Cleanup.Executing = false
		s.Cleanup.Result = &res
		s.Stale = true

	case ExecuteFailed:
		if !s.Cleanup.Executing {
			return s
		}
		s.Cleanup.Executing = false
		s.Cleanup.Err = errText(ev.Err)
	}
	return s
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
