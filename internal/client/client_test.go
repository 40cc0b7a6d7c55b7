package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"helmetwatch/internal/model"
)

func TestDetect_SendsMultipartImageField(t *testing.T) {
	var gotField []byte
	var gotType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/detect" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("Missing image field: %v", err)
			http.Error(w, "No image uploaded", http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotField, _ = io.ReadAll(file)
		gotType = header.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("annotated"))
	}))
	defer srv.Close()

	c := NewDetectClient(srv.URL, srv.Client())
	out, err := c.Detect(context.Background(), model.Frame{Data: []byte("raw-jpeg"), MIMEType: "image/jpeg"})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if string(gotField) != "raw-jpeg" {
		t.Errorf("Server received %q", gotField)
	}
	if gotType != "image/jpeg" {
		t.Errorf("Part content type %q", gotType)
	}
	if string(out.Data) != "annotated" || out.MIMEType != "image/jpeg" {
		t.Errorf("Unexpected response %q %q", out.Data, out.MIMEType)
	}
}

func TestDetect_NonSuccessIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Model inference error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewDetectClient(srv.URL, srv.Client())
	_, err := c.Detect(context.Background(), model.Frame{Data: []byte("x")})

	if !errors.Is(err, ErrTransientRequest) {
		t.Fatalf("Expected ErrTransientRequest, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected StatusError 500, got %v", err)
	}
}

func TestDetect_OversizedFrameIsNotSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewDetectClient(srv.URL, srv.Client())
	_, err := c.Detect(context.Background(), model.Frame{Data: make([]byte, MaxUploadSize+1)})

	if !errors.Is(err, ErrTransientRequest) {
		t.Errorf("Expected ErrTransientRequest, got %v", err)
	}
	if called {
		t.Error("Oversized frame should not reach the server")
	}
}

func TestDetect_ConnectionFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewDetectClient(url, nil)
	if _, err := c.Detect(context.Background(), model.Frame{Data: []byte("x")}); !errors.Is(err, ErrTransientRequest) {
		t.Errorf("Expected ErrTransientRequest, got %v", err)
	}
}

func TestStatsFetch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    model.StatSample
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"date":"2025-01-04","no_helmet":3,"time":"14:30:00"}`,
			want:   model.StatSample{NoHelmet: 3, Date: "2025-01-04", Time: "14:30:00"},
		},
		{name: "server error", status: http.StatusServiceUnavailable, body: "down", wantErr: ErrTransientRequest},
		{name: "bad json", status: http.StatusOK, body: "{not json", wantErr: ErrInvalidPayload},
		{name: "null body", status: http.StatusOK, body: "null", wantErr: ErrInvalidPayload},
		{name: "empty object", status: http.StatusOK, body: "{}", wantErr: ErrInvalidPayload},
		{name: "date only", status: http.StatusOK, body: `{"date":"2025-01-04"}`, wantErr: ErrInvalidPayload},
		{name: "error reply", status: http.StatusOK, body: `{"error":"x"}`, wantErr: ErrInvalidPayload},
		{
			name:   "zero count",
			status: http.StatusOK,
			body:   `{"no_helmet":0,"date":"2025-01-04"}`,
			want:   model.StatSample{NoHelmet: 0, Date: "2025-01-04"},
		},
		{name: "negative count", status: http.StatusOK, body: `{"no_helmet":-1,"date":"x"}`, wantErr: ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/stats" {
					t.Errorf("Unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewStatsClient(srv.URL, srv.Client()).Fetch(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Fetch = %+v, expected %+v", got, tt.want)
			}
		})
	}
}
