package handler

import (
	"bytes"
	"net/http"

	"helmetwatch/internal/logger"
	"helmetwatch/internal/service"
)

// BlobHandler serves a preview resource by ID. Released resources are gone.
func BlobHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, mimeType, err := manager.GetBlobs().Get(r.PathValue("id"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", mimeType)
		w.Header().Set("Cache-Control", "no-store")
		w.Write(data)
	}
}

// ChartHandler serves the current trend chart as PNG.
func ChartHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := manager.GetCanvas().WritePNG(&buf); err != nil {
			logger.Error("Error encoding chart: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(buf.Bytes())
	}
}
