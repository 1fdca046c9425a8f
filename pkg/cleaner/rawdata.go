package cleaner

import "github.com/wdm0006/custodian/pkg/frame"

// RawData is the downloaded artifact: either an in-memory frame or a file
// on disk, never both. The zero value is neither and is not valid input to
// a clean step.
type RawData struct {
	f *frame.Frame
	p string
}

func FrameData(f *frame.Frame) RawData { return RawData{f: f} }
func PathData(path string) RawData     { return RawData{p: path} }

// InMemory reports whether the artifact lives in memory.
func (r RawData) InMemory() bool { return r.f != nil }

func (r RawData) Frame() (*frame.Frame, bool) { return r.f, r.f != nil }
func (r RawData) Path() (string, bool)        { return r.p, r.f == nil && r.p != "" }
