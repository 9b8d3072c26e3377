package pipeline

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bintree/pkg/cache"
	"github.com/matzehuels/bintree/pkg/observability"
)

var sampleValues = strings.Fields("2 4 6 8 10 15 20 25 35 50 55 70 89 99 100")

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewLRUCache(16)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRunnerExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	res, err := r.Execute(ctx, Options{Values: sampleValues, Formats: []string{FormatText, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.ID == "" {
		t.Error("Result.ID should be set")
	}
	if res.Depth != 4 || res.Stats.NodeCount != 15 || res.Stats.ValueCount != 15 {
		t.Errorf("depth = %d, nodes = %d, values = %d", res.Depth, res.Stats.NodeCount, res.Stats.ValueCount)
	}
	if len(res.Lines) != 15 {
		t.Errorf("lines = %d, want 15", len(res.Lines))
	}
	text := string(res.Artifacts[FormatText])
	if !strings.HasPrefix(text, strings.Repeat(" ", 30)+"25") {
		t.Errorf("text should start with the centred root:\n%s", text)
	}
	if res.CacheInfo.RenderHit || len(res.CacheInfo.Hits) != 0 {
		t.Error("first run should not hit the cache")
	}

	again, err := r.Execute(ctx, Options{Values: sampleValues, Formats: []string{FormatText, FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Errorf("second run should be served from the cache, hits = %v", again.CacheInfo.Hits)
	}
	if string(again.Artifacts[FormatText]) != text {
		t.Error("cached text differs from rendered text")
	}
	if again.ID == res.ID {
		t.Error("every run should get a new ID")
	}
}

func TestRunnerExecute_PartialCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Values: sampleValues, Formats: []string{FormatText}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Values: sampleValues, Formats: []string{FormatText, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(res.CacheInfo.Hits, []string{FormatText}) {
		t.Errorf("hits = %v, want [text]", res.CacheInfo.Hits)
	}
	if res.CacheInfo.RenderHit {
		t.Error("RenderHit should be false when a format was rendered")
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
}

func TestRunnerExecute_OptionsChangeKey(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	a, _ := r.Execute(ctx, Options{Values: []string{"1", "2", "3"}})
	b, err := r.Execute(ctx, Options{Values: []string{"1", "2", "3"}, CellWidth: 1})
	if err != nil {
		t.Fatal(err)
	}
	if b.CacheInfo.RenderHit {
		t.Error("different cell width should not hit the cache")
	}
	if string(a.Artifacts[FormatText]) == string(b.Artifacts[FormatText]) {
		t.Error("cell width should change the text")
	}
}

func TestRunnerExecute_Refresh(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	_, _ = r.Execute(ctx, Options{Values: []string{"1"}})
	res, err := r.Execute(ctx, Options{Values: []string{"1"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.CacheInfo.Hits) != 0 {
		t.Error("Refresh should bypass the cache")
	}
}

func TestRunnerExecute_InvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Values: []string{""}}); err == nil {
		t.Error("empty value should fail")
	}
	if _, err := r.Execute(context.Background(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestRunnerExecute_Empty(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Root != nil || res.Depth != 0 || len(res.Lines) != 0 {
		t.Errorf("empty result = %+v", res)
	}
}

func TestRunnerConcurrent(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Execute(ctx, Options{Values: sampleValues[:i+1]})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("Execute() error = %v", err)
		}
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildStart(context.Context, int) { h.record("build-start") }
func (h *recordingHooks) OnBuildComplete(_ context.Context, _, _ int, _ time.Duration, _ error) {
	h.record("build-done")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render-done")
}

func TestRunnerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Values: []string{"1"}}); err != nil {
		t.Fatal(err)
	}

	want := []string{"build-start", "build-done", "render-start", "render-done"}
	if !slices.Equal(h.events, want) {
		t.Errorf("events = %v, want %v", h.events, want)
	}
}
