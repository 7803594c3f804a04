//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCapacity = 1 << 20

// Enabled reports whether this binary was built with the profile tag.
func Enabled() bool { return true }

// Init must be called once before Start records anything.
// capacity is the number of open/close events kept; older ones are overwritten.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	fid := frames.intern(name)
	at := time.Now().UnixNano()
	ring.push(event{atNS: at, frame: fid, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < at {
			end = at
		}
		ring.push(event{atNS: end, frame: fid, open: false})
	}
}

// Dump writes the recorded scopes to path as a speedscope file.
func Dump(path string) error {
	return writeSpeedscope(ring.snapshot(), frames.names(), path)
}

// OpenProfilerGraph dumps into the temp dir and launches speedscope on the
// file when it is on PATH. The path is returned either way.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "shaderkit.profile.speedscope.json")
	if err := Dump(path); err != nil {
		return "", err
	}

	bin, err := exec.LookPath("speedscope")
	if err != nil {
		log.Printf("profiler: speedscope not found, capture left at %s", path)
		return path, nil
	}
	cmd := exec.Command(bin, path)
	cmd.SysProcAttr = hideWindowAttr()
	if err := cmd.Start(); err != nil {
		return path, fmt.Errorf("profiler: launch speedscope: %w", err)
	}
	return path, nil
}

// ---------- event ring ----------

type event struct {
	atNS  int64
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []event
}

func (r *eventRing) init(capacity int) {
	r.ready.Store(false)
	r.cap = uint64(capacity)
	r.evs = make([]event, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot returns the kept events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var ring eventRing

// ---------- frame names ----------

type frameTable struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

func (t *frameTable) intern(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.index[name]; ok {
		return id
	}
	if t.index == nil {
		t.index = map[string]int{}
	}
	id := len(t.list)
	t.index[name] = id
	t.list = append(t.list, name)
	return id
}

func (t *frameTable) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list...)
}

var frames frameTable

// ---------- speedscope ----------

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

var errNoEvents = errors.New("profiler: no events recorded")

// balance turns raw events into properly nested speedscope events.
// Unmatched closes (their open fell out of the ring) are dropped and scopes
// still open at the end are closed at the last timestamp.
func balance(evs []event) ([]ssEvent, int64) {
	if len(evs) == 0 {
		return nil, 0
	}
	base := evs[0].atNS
	out := make([]ssEvent, 0, len(evs)+8)
	stack := make([]int, 0, 32)
	last := int64(0)

	for _, e := range evs {
		at := (e.atNS - base) / 1000
		if at < last {
			at = last
		}
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(evs []event, names []string, path string) error {
	out, end := balance(evs)
	if len(out) == 0 {
		return errNoEvents
	}

	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "shaderkit",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "shaderkit-profiler",
		Name:     "shaderkit capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}
