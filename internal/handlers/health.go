package handlers

import (
	"context"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"
)

const readinessTimeout = 3 * time.Second

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HandlerSet) HandleLiveness(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReadiness reports whether the shipment database answers.
func (h *HandlerSet) HandleReadiness(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	status := "ok"
	httpStatus := http.StatusOK

	if err := h.lookup.Ping(ctx); err != nil {
		logger.Warnf("Readiness check failed: %s", err)
		deps["database"] = dependencyStatus{Status: "unhealthy", Error: "database unavailable"}
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		deps["database"] = dependencyStatus{Status: "ok"}
	}

	writeJSON(w, httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
