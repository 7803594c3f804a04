//go:build !profile

package profiler

func Enabled() bool { return false }

func Init(capacity int) {}

func Start(name string) func() { return func() {} }

func Dump(path string) error { return ErrDisabled }

func OpenProfilerGraph() (string, error) { return "", ErrDisabled }
