package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ExposesCounters(t *testing.T) {
	m := New()
	m.FramesSubmitted.Inc()
	m.StatsFailures.Add(2)
	m.CameraActive.Set(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	text := string(body)

	for _, want := range []string{
		"helmetwatch_frames_submitted_total 1",
		"helmetwatch_stats_failures_total 2",
		"helmetwatch_camera_active 1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}
