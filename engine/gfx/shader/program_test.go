package shader_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hubastard/shaderkit/engine/gfx/shader"
	"github.com/hubastard/shaderkit/engine/gfx/shader/shadertest"
	"github.com/hubastard/shaderkit/engine/logging"
)

type entry struct {
	level logging.Level
	msg   string
}

type recorder struct{ entries []entry }

func (r *recorder) Log(level logging.Level, msg string) {
	r.entries = append(r.entries, entry{level, msg})
}

func (r *recorder) at(level logging.Level) []string {
	var out []string
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

const (
	vertexSrc   = "#version 410 core\nin vec2 position;\nin vec2 texCoord;\nvoid main() {}\n"
	fragmentSrc = "#version 410 core\nout vec4 color;\nvoid main() { color = vec4(1); }\n"
	geometrySrc = "#version 410 core\nlayout(triangles) in;\nvoid main() {}\n"
)

func quadFS() fstest.MapFS {
	return fstest.MapFS{
		"shaders/quad.vs": {Data: []byte(vertexSrc)},
		"shaders/quad.fs": {Data: []byte(fragmentSrc)},
		"shaders/quad.gs": {Data: []byte(geometrySrc)},
	}
}

func build(t *testing.T, drv *shadertest.Driver, fsys fstest.MapFS, stages ...shader.Stage) (*shader.Program, *recorder) {
	t.Helper()
	rec := &recorder{}
	p := shader.New(drv, "shaders/quad", stages, shader.WithFS(fsys), shader.WithSink(rec))
	return p, rec
}

func TestNewLinksAllStages(t *testing.T) {
	drv := shadertest.New()
	p, rec := build(t, drv, quadFS(), shader.StageVertex, shader.StageGeometry, shader.StageFragment)
	defer p.Delete()

	if !p.Linked() {
		t.Fatalf("program did not link, log: %v", rec.entries)
	}
	if w := rec.at(logging.LevelWarning); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
	if e := rec.at(logging.LevelError); len(e) != 0 {
		t.Errorf("expected no errors, got %v", e)
	}

	got := drv.Attached(p.ID())
	want := []shader.Stage{shader.StageVertex, shader.StageFragment, shader.StageGeometry}
	if len(got) != len(want) {
		t.Fatalf("attached %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attached[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if len(p.Shaders()) != 3 || len(p.Stages()) != 3 {
		t.Errorf("stage and shader slices must match the request, got %d/%d", len(p.Stages()), len(p.Shaders()))
	}
	if drv.InvalidOps() != 0 {
		t.Errorf("driver saw %d invalid operations", drv.InvalidOps())
	}
}

func TestNewSubmitsFileContents(t *testing.T) {
	drv := shadertest.New()
	p, _ := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)
	defer p.Delete()

	// Attached shaders are only flagged, so their source is still there.
	sh := p.Shaders()
	if src, ok := drv.Source(sh[0]); !ok || src != vertexSrc {
		t.Errorf("vertex source = %q (live %v)", src, ok)
	}
	if src, ok := drv.Source(sh[1]); !ok || src != fragmentSrc {
		t.Errorf("fragment source = %q (live %v)", src, ok)
	}
}

func TestNewBindsFixedAttribLocations(t *testing.T) {
	drv := shadertest.New()
	p, _ := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)
	defer p.Delete()

	for name, want := range map[string]uint32{"position": 0, "texCoord": 1} {
		got, ok := drv.AttribLocation(p.ID(), name)
		if !ok {
			t.Errorf("attribute %q not bound", name)
			continue
		}
		if got != want {
			t.Errorf("attribute %q bound to %d, want %d", name, got, want)
		}
	}
}

func TestNewMissingFile(t *testing.T) {
	drv := shadertest.New()
	fsys := quadFS()
	delete(fsys, "shaders/quad.fs")

	p, rec := build(t, drv, fsys, shader.StageVertex, shader.StageFragment, shader.StageGeometry)
	defer p.Delete()

	warnings := rec.at(logging.LevelWarning)
	var loads, compiles int
	for _, w := range warnings {
		switch {
		case w == "could not load shader shaders/quad.fs":
			loads++
		case strings.HasSuffix(w, " in shaders/quad.fs"):
			compiles++
		}
	}
	if loads != 1 {
		t.Errorf("expected one load warning, got %d in %v", loads, warnings)
	}
	if compiles != 1 {
		t.Errorf("expected one compile warning for the empty source, got %d in %v", compiles, warnings)
	}

	// The failed shader was never attached, so it is gone already.
	if src, ok := drv.Source(p.Shaders()[1]); ok {
		t.Errorf("failed shader should already be deleted, still holds %q", src)
	}

	got := drv.Attached(p.ID())
	if len(got) != 2 || got[0] != shader.StageVertex || got[1] != shader.StageGeometry {
		t.Errorf("attached %v, want [vertex geometry]", got)
	}
	if !p.Linked() {
		t.Error("remaining stages should still link")
	}
}

func TestNewCompileErrorStripsNewline(t *testing.T) {
	drv := shadertest.New()
	fsys := quadFS()
	fsys["shaders/quad.fs"] = &fstest.MapFile{Data: []byte("void main() {\n#error broken\n}\n")}

	p, rec := build(t, drv, fsys, shader.StageVertex, shader.StageFragment)
	defer p.Delete()

	warnings := rec.at(logging.LevelWarning)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	want := "0:2(1): error: #error directive in shaders/quad.fs"
	if warnings[0] != want {
		t.Errorf("warning = %q, want %q", warnings[0], want)
	}
}

func TestNewUnknownStageIsSkipped(t *testing.T) {
	drv := shadertest.New()
	p, rec := build(t, drv, quadFS(), shader.StageVertex, shader.Stage(99), shader.StageFragment)
	defer p.Delete()

	errs := rec.at(logging.LevelError)
	if len(errs) != 1 || errs[0] != "not a recognized shader type: 99" {
		t.Errorf("unexpected errors %v", errs)
	}
	if w := rec.at(logging.LevelWarning); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
	if sh := p.Shaders(); sh[1] != 0 {
		t.Errorf("unknown stage should have no shader handle, got %d", sh[1])
	}
	if got := drv.Attached(p.ID()); len(got) != 2 {
		t.Errorf("attached %v, want vertex and fragment", got)
	}
	if !p.Linked() {
		t.Error("program should link without the unknown stage")
	}
}

func TestNewShaderCreationFailure(t *testing.T) {
	drv := shadertest.New()
	drv.FailCreateShader = map[shader.Stage]bool{shader.StageGeometry: true}

	p, rec := build(t, drv, quadFS(), shader.StageVertex, shader.StageGeometry, shader.StageFragment)
	defer p.Delete()

	warnings := rec.at(logging.LevelWarning)
	if len(warnings) != 1 || warnings[0] != "error creating shader shaders/quad.gs" {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if got := drv.Attached(p.ID()); len(got) != 2 {
		t.Errorf("attached %v, want vertex and fragment", got)
	}
}

func TestNewProgramCreationFailure(t *testing.T) {
	drv := shadertest.New()
	drv.FailCreateProgram = true

	p, rec := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)

	warnings := rec.at(logging.LevelWarning)
	if len(warnings) != 1 || warnings[0] != "shader program could not be initialized: shaders/quad" {
		t.Errorf("unexpected warnings %v", warnings)
	}
	if p.ID() != 0 || p.Linked() {
		t.Errorf("program should be unusable, id=%d linked=%v", p.ID(), p.Linked())
	}
	if drv.LiveShaders() != 0 {
		t.Errorf("no shader should be created, %d live", drv.LiveShaders())
	}

	p.Delete()
	if drv.InvalidOps() != 0 {
		t.Errorf("deleting an unallocated program should be a no-op, got %d invalid ops", drv.InvalidOps())
	}
}

func TestNewLinkFailure(t *testing.T) {
	drv := shadertest.New()
	fsys := quadFS()
	fsys["shaders/quad.fs"] = &fstest.MapFile{Data: []byte("#linkerror\nvoid main() {}\n")}

	p, rec := build(t, drv, fsys, shader.StageVertex, shader.StageFragment)

	warnings := rec.at(logging.LevelWarning)
	want := "error: unresolved symbol in fragment shader Program shaders/quad"
	if len(warnings) != 1 || warnings[0] != want {
		t.Fatalf("warnings = %v, want [%q]", warnings, want)
	}
	if p.Linked() {
		t.Error("Linked should be false")
	}
	if p.ID() == 0 {
		t.Error("handle is kept after a link failure")
	}
	if drv.LivePrograms() != 0 || drv.LiveShaders() != 0 {
		t.Errorf("link failure leaked %d programs and %d shaders", drv.LivePrograms(), drv.LiveShaders())
	}
}

func TestNewNoStagesFailsToLink(t *testing.T) {
	drv := shadertest.New()
	p, rec := build(t, drv, quadFS())
	defer p.Delete()

	if p.Linked() {
		t.Error("a program without stages cannot link")
	}
	if len(rec.at(logging.LevelWarning)) != 1 {
		t.Errorf("expected the link warning, got %v", rec.entries)
	}
}

func TestRepeatedBuildDoesNotLeak(t *testing.T) {
	drv := shadertest.New()
	fsys := quadFS()

	for i := 0; i < 100; i++ {
		p, _ := build(t, drv, fsys, shader.StageVertex, shader.StageGeometry, shader.StageFragment)
		if drv.LiveShaders() != 3 {
			t.Fatalf("iteration %d: attached shaders should live until the program is deleted, %d live", i, drv.LiveShaders())
		}
		p.Delete()
		if drv.LivePrograms() != 0 || drv.LiveShaders() != 0 {
			t.Fatalf("iteration %d: leaked %d programs and %d shaders", i, drv.LivePrograms(), drv.LiveShaders())
		}
	}
}

func TestDeleteWhileBoundIsDeferred(t *testing.T) {
	drv := shadertest.New()
	p, _ := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)

	p.Bind()
	p.Delete()
	if drv.LivePrograms() != 1 || drv.LiveShaders() != 2 {
		t.Fatalf("bound program should stay alive, %d programs / %d shaders", drv.LivePrograms(), drv.LiveShaders())
	}

	drv.UseProgram(0)
	if drv.LivePrograms() != 0 || drv.LiveShaders() != 0 {
		t.Errorf("leaked %d programs and %d shaders", drv.LivePrograms(), drv.LiveShaders())
	}
}

func TestBindIsFireAndForget(t *testing.T) {
	drv := shadertest.New()
	fsys := quadFS()
	fsys["shaders/quad.vs"] = &fstest.MapFile{Data: []byte("#linkerror\n")}

	p, rec := build(t, drv, fsys, shader.StageVertex, shader.StageFragment)
	before := len(rec.entries)

	p.Bind()

	if len(rec.entries) != before {
		t.Errorf("Bind must not log, got %v", rec.entries[before:])
	}
	// The driver rejects the deleted handle; the program does not notice.
	if drv.InvalidOps() != 1 {
		t.Errorf("expected the driver to flag one invalid bind, got %d", drv.InvalidOps())
	}
	if drv.Bound() != 0 {
		t.Errorf("nothing should be bound, got %d", drv.Bound())
	}
}

func TestBindActivatesProgram(t *testing.T) {
	drv := shadertest.New()
	p, _ := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)
	defer p.Delete()

	p.Bind()
	if drv.Bound() != p.ID() {
		t.Errorf("bound = %d, want %d", drv.Bound(), p.ID())
	}
}

func TestNewCopiesStages(t *testing.T) {
	drv := shadertest.New()
	stages := []shader.Stage{shader.StageVertex, shader.StageFragment}
	p, _ := build(t, drv, quadFS(), stages...)
	defer p.Delete()

	stages[0] = shader.StageCompute
	if p.Stages()[0] != shader.StageVertex {
		t.Error("program must not alias the caller's stage slice")
	}
}

func TestNewLogsLoadedFiles(t *testing.T) {
	drv := shadertest.New()
	p, rec := build(t, drv, quadFS(), shader.StageVertex, shader.StageFragment)
	defer p.Delete()

	info := rec.at(logging.LevelInfo)
	want := []string{"loading shader shaders/quad.vs", "loading shader shaders/quad.fs"}
	if len(info) != len(want) {
		t.Fatalf("info = %v, want %v", info, want)
	}
	for i := range want {
		if info[i] != want[i] {
			t.Errorf("info[%d] = %q, want %q", i, info[i], want[i])
		}
	}
}

func TestNewBuildsEveryStageKind(t *testing.T) {
	drv := shadertest.New()
	fsys := fstest.MapFS{}
	for _, st := range shader.Stages() {
		ext, _ := st.Extension()
		fsys["shaders/quad"+ext] = &fstest.MapFile{Data: []byte("#version 460 core\n// " + st.String() + "\nvoid main() {}\n")}
	}

	p, rec := build(t, drv, fsys, shader.Stages()...)

	if !p.Linked() {
		t.Fatalf("program did not link, log: %v", rec.entries)
	}
	if w := rec.at(logging.LevelWarning); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
	got := drv.Attached(p.ID())
	want := shader.Stages()
	if len(got) != len(want) {
		t.Fatalf("attached %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("attached[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	p.Delete()
	if drv.LiveShaders() != 0 || drv.LivePrograms() != 0 || drv.InvalidOps() != 0 {
		t.Errorf("after Delete: %d shaders, %d programs, %d invalid ops", drv.LiveShaders(), drv.LivePrograms(), drv.InvalidOps())
	}
}
