package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/export"
)

type statusRequest struct {
	SSCC     string `json:"sscc" validate:"required,max=64"`
	Status   string `json:"status" validate:"max=64"`
	User     string `json:"user" validate:"max=128"`
	Location string `json:"location" validate:"max=128"`
}

type statusResponse struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error"`
	File  string  `json:"file,omitempty"`
}

func statusFailure(w http.ResponseWriter, status int, message string, file string) {
	writeJSON(w, status, statusResponse{OK: false, Error: &message, File: file})
}

// HandleScanStatus answers POST /scan_status by exporting a status document.
func (h *HandlerSet) HandleScanStatus(w http.ResponseWriter, req *http.Request) {

	var data statusRequest
	if err := json.NewDecoder(req.Body).Decode(&data); err != nil {
		statusFailure(w, http.StatusBadRequest, ErrCouldNotParseBody.Error(), "")
		return
	}

	data.SSCC = strings.TrimSpace(data.SSCC)
	data.Status = strings.TrimSpace(data.Status)
	data.User = strings.TrimSpace(data.User)
	data.Location = strings.TrimSpace(data.Location)

	if err := h.validator.Validate(data); err != nil {
		statusFailure(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.exporter.Export(req.Context(), export.Request{
		SSCC:     data.SSCC,
		Status:   data.Status,
		User:     data.User,
		Location: data.Location,
	})
	if err != nil {
		var uploadErr *export.UploadError
		if errors.As(err, &uploadErr) {
			logger.Warnf("Status for %s written but not uploaded: %s", data.SSCC, err)
			statusFailure(w, http.StatusBadGateway, "upload failed, file kept for retry", filepath.Base(uploadErr.File))
			return
		}
		var writeErr *export.WriteError
		if errors.As(err, &writeErr) {
			logger.Errorf("Status for %s not written: %s", data.SSCC, err)
			statusFailure(w, http.StatusInternalServerError, "could not write status file", "")
			return
		}
		logger.Errorf("Status export for %s failed: %s", data.SSCC, err)
		statusFailure(w, http.StatusInternalServerError, "status export failed", "")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{OK: true, File: filepath.Base(result.File)})
}
