// Package profiler records named scopes into a ring buffer and writes them
// as an evented speedscope profile. Without the "profile" build tag every
// call is a no-op and the dump functions return ErrDisabled.
package profiler

import "errors"

// ErrDisabled is returned by Dump and OpenProfilerGraph in builds without
// the profile tag.
var ErrDisabled = errors.New("profiler: built without the profile tag")
