package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/ssccscan/internal/auth"
	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/db"
	"github.com/wellywell/ssccscan/internal/export"
	"github.com/wellywell/ssccscan/internal/history"
	"github.com/wellywell/ssccscan/internal/metrics"
	"github.com/wellywell/ssccscan/internal/types"
	"github.com/wellywell/ssccscan/internal/validate"
)

type Lookup interface {
	FindShipment(ctx context.Context, barcode string) (*types.ShipmentRecord, error)
	Ping(ctx context.Context) error
}

type StatusExporter interface {
	Export(ctx context.Context, req export.Request) (*export.Result, error)
}

type ScanPublisher interface {
	PublishScan(ctx context.Context, entry types.ScanEntry)
}

type HandlerSet struct {
	conf      *config.ServerConfig
	lookup    Lookup
	exporter  StatusExporter
	recent    *history.Recent
	publisher ScanPublisher
	validator *requestValidator
	adminHash string
	now       func() time.Time
}

var (
	ErrCouldNotParseBody = errors.New("could not parse body")
	ErrAuthDataEmpty     = errors.New("login or password cannot be empty")
)

// NewHandlerSet builds the HTTP handlers. publisher may be nil.
func NewHandlerSet(conf *config.ServerConfig, lookup Lookup, exporter StatusExporter, recent *history.Recent, publisher ScanPublisher) (*HandlerSet, error) {
	h := &HandlerSet{
		conf:      conf,
		lookup:    lookup,
		exporter:  exporter,
		recent:    recent,
		publisher: publisher,
		validator: newRequestValidator(),
		now:       time.Now,
	}

	if conf.Admin.Enabled() {
		// a bcrypt hash may be configured instead of the plain password
		if strings.HasPrefix(conf.Admin.Password, "$2") {
			h.adminHash = conf.Admin.Password
		} else {
			hash, err := auth.HashPassword(conf.Admin.Password)
			if err != nil {
				return nil, err
			}
			h.adminHash = hash
		}
	}
	return h, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Could not write response: %s", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// HandleScan answers GET /api/scan?barcode=.
func (h *HandlerSet) HandleScan(w http.ResponseWriter, req *http.Request) {

	barcode, err := validate.Barcode(req.URL.Query().Get("barcode"))
	if err != nil {
		metrics.ScansTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.conf.Scan.ValidateCheckDigit && !validate.SSCCCheckDigit(barcode) {
		metrics.ScansTotal.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, validate.ErrInvalidCheckDigit.Error())
		return
	}

	result := types.ScanResult{Barcode: barcode}

	record, err := h.lookup.FindShipment(req.Context(), barcode)
	if err != nil {
		var notFound *db.ShipmentNotFoundError
		if !errors.As(err, &notFound) {
			metrics.ScansTotal.WithLabelValues("error").Inc()
			logger.Errorf("Lookup of %s failed: %s", barcode, err)

			var queryErr *db.QueryError
			if errors.As(err, &queryErr) {
				writeError(w, http.StatusInternalServerError, "database query failed")
				return
			}
			writeError(w, http.StatusInternalServerError, "database unavailable")
			return
		}
		logger.Infof("Barcode %s not found", barcode)
	} else {
		result.Found = true
		result.Record = record
	}

	entry := types.ScanEntry{Barcode: barcode, Found: result.Found, ScannedAt: h.now()}
	h.recent.Add(entry)
	if h.publisher != nil {
		h.publisher.PublishScan(req.Context(), entry)
	}

	status := http.StatusOK
	if result.Found {
		metrics.ScansTotal.WithLabelValues("found").Inc()
	} else {
		metrics.ScansTotal.WithLabelValues("not_found").Inc()
		status = h.conf.Scan.NotFoundStatus
	}
	writeJSON(w, status, result)
}

// HandleLastScans lists the recent scans, most recent first.
func (h *HandlerSet) HandleLastScans(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, h.recent.List())
}

// HandleSettings shows the active configuration without secrets.
func (h *HandlerSet) HandleSettings(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, h.conf.Redacted())
}

func (h *HandlerSet) parseAuthData(body []byte) (username string, password string, err error) {

	var data struct {
		Username string `json:"login"`
		Password string `json:"password"`
	}

	err = json.Unmarshal(body, &data)
	if err != nil {
		return "", "", ErrCouldNotParseBody
	}

	if data.Username == "" || data.Password == "" {
		return "", "", ErrAuthDataEmpty
	}

	return data.Username, data.Password, nil
}

// HandleLogin checks the admin credentials and sets the session cookie.
func (h *HandlerSet) HandleLogin(w http.ResponseWriter, req *http.Request) {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	username, password, err := h.parseAuthData(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.adminHash == "" || username != h.conf.Admin.User || !auth.CheckPasswordHash(password, h.adminHash) {
		logger.Warnf("Failed admin login for %q", username)
		writeError(w, http.StatusUnauthorized, "wrong login or password")
		return
	}

	err = auth.SetAuthCookie(username, w, []byte(h.conf.Admin.Secret), h.conf.Admin.CookieTTL)
	if err != nil {
		logger.Errorf("Could not set auth cookie: %s", err)
		writeError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
