package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"helmetwatch/internal/logger"
	"helmetwatch/internal/service"
	"helmetwatch/internal/service/camera"
)

// StartCameraHandler starts the camera session. Starting an active
// session is not an error.
func StartCameraHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := manager.GetCamera().Start(r.Context()); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, camera.ErrMediaAcquisition) {
				status = http.StatusServiceUnavailable
			}
			writeJSON(w, status, map[string]string{"error": err.Error()}, logger)
			return
		}
		writeJSON(w, http.StatusOK, manager.Status(), logger)
	}
}

// StopCameraHandler stops the camera session if one is active.
func StopCameraHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager.GetCamera().Stop()
		writeJSON(w, http.StatusOK, manager.Status(), logger)
	}
}

// StatusHandler reports camera, dashboard and viewer state.
func StatusHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, manager.Status(), logger)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Error encoding JSON response: %v", err)
	}
}
