// Package handlers implements the HTTP handlers for the label matching API.
// Both endpoints take a multipart upload with the scanned labels PDF under
// "labels" and the order list xlsx under "orders".
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"labelsort/internal/config"
	"labelsort/internal/extract"
	"labelsort/internal/pdfdoc"
	"labelsort/internal/pipeline"
	"labelsort/internal/refsheet"
	"labelsort/internal/report"
	"labelsort/internal/sortorder"
)

// LabelHandler handles match and sort requests.
type LabelHandler struct {
	cfg *config.Config
}

// NewLabelHandler creates a new label handler.
func NewLabelHandler(cfg *config.Config) *LabelHandler {
	return &LabelHandler{cfg: cfg}
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Match handles POST /api/match: runs extraction and matching and returns
// the JSON match report.
func (h *LabelHandler) Match(w http.ResponseWriter, r *http.Request) {
	pages, refData, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	result := pipeline.Match(pages, refData.Records)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := report.WriteJSON(w, result.Report, nil); err != nil {
		log.Printf("write match response: %v", err)
	}
}

// Sort handles POST /api/sort: runs the full pipeline and returns the
// reordered PDF. The strategy query parameter overrides the configured
// default; an unknown strategy is a 400, never a silent fallback.
func (h *LabelHandler) Sort(w http.ResponseWriter, r *http.Request) {
	strategy := h.cfg.Strategy()
	if s := r.URL.Query().Get("strategy"); s != "" {
		parsed, err := sortorder.ParseStrategy(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = parsed
	}

	pdfBytes, refData, ok := h.readUploadRaw(w, r)
	if !ok {
		return
	}

	pages, err := pdfdoc.ExtractPagesFromBytes(pdfBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read labels pdf: %v", err))
		return
	}

	result, err := pipeline.Run(pages, refData.Records, strategy)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="labels-sorted.pdf"`)
	if err := pdfdoc.Reorder(bytes.NewReader(pdfBytes), w, result.Sorted.PageOrder); err != nil {
		// Headers are already out; all we can do is log.
		log.Printf("write sorted pdf: %v", err)
	}
}

// readUpload parses the multipart upload and extracts page texts and the
// reference list. Writes the error response itself when something is wrong.
func (h *LabelHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]extract.PageText, *refsheet.ReferenceData, bool) {
	pdfBytes, refData, ok := h.readUploadRaw(w, r)
	if !ok {
		return nil, nil, false
	}

	pages, err := pdfdoc.ExtractPagesFromBytes(pdfBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read labels pdf: %v", err))
		return nil, nil, false
	}

	return pages, refData, true
}

func (h *LabelHandler) readUploadRaw(w http.ResponseWriter, r *http.Request) ([]byte, *refsheet.ReferenceData, bool) {
	maxBytes := int64(h.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return nil, nil, false
	}

	pdfBytes, err := formFileBytes(r, "labels")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	ordersFile, _, err := r.FormFile("orders")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing "orders" file`)
		return nil, nil, false
	}
	defer func() { _ = ordersFile.Close() }()

	refData, err := refsheet.LoadReader(ordersFile)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, refsheet.ErrMissingColumns) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, fmt.Sprintf("read orders sheet: %v", err))
		return nil, nil, false
	}

	if len(refData.Records) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "orders sheet has no usable rows")
		return nil, nil, false
	}

	return pdfBytes, refData, true
}

func formFileBytes(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %q file", field)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %q file: %w", field, err)
	}
	return data, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
