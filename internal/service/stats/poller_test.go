package stats

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"helmetwatch/internal/chart"
	"helmetwatch/internal/client"
	"helmetwatch/internal/history"
	"helmetwatch/internal/logger"
	"helmetwatch/internal/metrics"
	"helmetwatch/internal/model"
	"helmetwatch/internal/view"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	samples []model.StatSample
	errs    []error
	calls   int
}

func (f *scriptedFetcher) Fetch(ctx context.Context) (model.StatSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return model.StatSample{}, f.errs[i]
	}
	if i < len(f.samples) {
		return f.samples[i], nil
	}
	return model.StatSample{NoHelmet: i + 1, Date: "2024-05-01"}, nil
}

type recordingDisplay struct {
	mu      sync.Mutex
	shown   []model.StatSample
	renders int
}

func (d *recordingDisplay) Show(sample model.StatSample) {
	d.mu.Lock()
	d.shown = append(d.shown, sample)
	d.mu.Unlock()
}

func (d *recordingDisplay) ChartRendered(version uint64) {
	d.mu.Lock()
	d.renders++
	d.mu.Unlock()
}

func newTestPoller(t *testing.T, fetcher Fetcher, display Display) (*Poller, *history.Ring, *chart.Canvas) {
	t.Helper()
	ring := history.NewRing(history.Capacity)
	canvas := chart.NewCanvas(chart.DefaultWidth, chart.DefaultHeight)
	p := NewPoller(fetcher, display, ring, canvas, logger.New(t.TempDir(), "info"), metrics.New())
	return p, ring, canvas
}

func TestPoller_FailedPollLeavesStateUnchanged(t *testing.T) {
	fetcher := &scriptedFetcher{
		samples: []model.StatSample{{NoHelmet: 4, Date: "2024-05-01"}},
		errs:    []error{nil, &client.StatusError{Endpoint: "/stats", StatusCode: 500}},
	}
	dashboard := view.NewDashboard(nil)
	p, ring, canvas := newTestPoller(t, fetcher, dashboard)

	p.poll(context.Background())
	version := canvas.Version()

	p.poll(context.Background())

	if got := dashboard.Displayed(); got.NoHelmet != 4 || got.Date != "2024-05-01" {
		t.Errorf("Displayed values changed after failed poll: %+v", got)
	}
	if !reflect.DeepEqual(ring.Values(), []int{4}) {
		t.Errorf("Expected ring [4], got %v", ring.Values())
	}
	if canvas.Version() != version {
		t.Error("Chart should not be redrawn after a failed poll")
	}
	if p.ConsecutiveFailures() != 1 {
		t.Errorf("Expected 1 consecutive failure, got %d", p.ConsecutiveFailures())
	}
}

func TestPoller_ThirtyOnePolls(t *testing.T) {
	display := &recordingDisplay{}
	p, ring, _ := newTestPoller(t, &scriptedFetcher{}, display)

	for i := 0; i < 31; i++ {
		p.poll(context.Background())
	}

	want := make([]int, 0, 30)
	for v := 2; v <= 31; v++ {
		want = append(want, v)
	}
	if got := ring.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if display.renders != 31 {
		t.Errorf("Expected 31 renders, got %d", display.renders)
	}
	if last := display.shown[len(display.shown)-1]; last.NoHelmet != 31 {
		t.Errorf("Expected displayed count 31, got %d", last.NoHelmet)
	}
}

func TestPoller_FailuresResetOnSuccess(t *testing.T) {
	transient := errors.New("connection refused")
	fetcher := &scriptedFetcher{errs: []error{transient, transient, transient}}
	p, _, _ := newTestPoller(t, fetcher, &recordingDisplay{})

	for i := 0; i < 3; i++ {
		p.poll(context.Background())
	}
	if p.ConsecutiveFailures() != 3 {
		t.Fatalf("Expected 3 consecutive failures, got %d", p.ConsecutiveFailures())
	}

	p.poll(context.Background())
	if p.ConsecutiveFailures() != 0 {
		t.Errorf("Expected failures reset after success, got %d", p.ConsecutiveFailures())
	}
}

func TestPoller_StartStop(t *testing.T) {
	fetcher := &scriptedFetcher{}
	p, ring, _ := newTestPoller(t, fetcher, &recordingDisplay{})
	p.interval = 10 * time.Millisecond

	p.Start(context.Background())
	p.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for ring.Len() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("Poller did not poll in time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	p.Stop()
	p.Stop()

	fetcher.mu.Lock()
	calls := fetcher.calls
	fetcher.mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	if fetcher.calls != calls {
		t.Errorf("Poller kept polling after Stop: %d -> %d", calls, fetcher.calls)
	}
}
