package gocvcam

import "testing"

func TestDeviceID(t *testing.T) {
	tests := []struct {
		device string
		want   interface{}
	}{
		{"0", 0},
		{"2", 2},
		{"/dev/video1", "/dev/video1"},
		{"rtsp://10.0.0.5/stream", "rtsp://10.0.0.5/stream"},
	}

	for _, tt := range tests {
		if got := deviceID(tt.device); got != tt.want {
			t.Errorf("deviceID(%q) = %v, expected %v", tt.device, got, tt.want)
		}
	}
}

func TestNewOpener_UserFallsBackToEnvironment(t *testing.T) {
	o := NewOpener("0", "", nil)
	if _, ok := o.devices["user"]; ok {
		t.Error("No user device should be configured")
	}
	if o.devices["environment"] != "0" {
		t.Errorf("Expected environment device 0, got %q", o.devices["environment"])
	}
}
