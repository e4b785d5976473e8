package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/archive"
	"github.com/structura/structura/internal/batch"
	"github.com/structura/structura/internal/catalog"
	"github.com/structura/structura/internal/report"
)

// MaxBodyBytes caps request bodies
const MaxBodyBytes = 1 << 20

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

type analysisResponse struct {
	Parameters analysis.Parameters `json:"parameters"`
	Result     analysis.Result     `json:"result"`
	Display    analysis.Result     `json:"display"`
	Status     string              `json:"status"`
}

type batchRequest struct {
	Items []json.RawMessage `json:"items"`
}

type batchResponse struct {
	Count    int             `json:"count"`
	Summary  batch.Summary   `json:"summary"`
	Outcomes []batch.Outcome `json:"outcomes"`
}

type reportRequest struct {
	Title      string          `json:"title"`
	Parameters json.RawMessage `json:"parameters"`
}

type dossierList struct {
	Count    int              `json:"count"`
	Dossiers []report.Dossier `json:"dossiers"`
}

// writeJSON encodes v before touching the response, so an encoding failure
// becomes a 500 instead of a truncated 200
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidation(w http.ResponseWriter, err error) {
	var verr *analysis.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid parameters", Problems: verr.Problems})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request payload: %w", err)
	}
	return nil
}

// parameters decodes raw over the defaults and validates the result
func parameters(raw []byte) (analysis.Parameters, error) {
	p := analysis.DefaultParameters()
	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		if err := json.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("invalid parameters payload: %w", err)
		}
	}
	return p, p.Validate()
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"materials":     catalog.Materials,
		"seismic_zones": catalog.SeismicZones,
		"shapes":        catalog.Shapes,
		"load_types":    []analysis.LoadType{analysis.PointLoad, analysis.UDL},
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	p, err := parameters(raw)
	if err != nil {
		writeValidation(w, err)
		return
	}

	res := analysis.Evaluate(p)
	if !res.Finite() {
		writeError(w, http.StatusBadRequest, "parameters overflow the analysis; result is not finite")
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Parameters: p,
		Result:     res,
		Display:    res.Rounded(),
		Status:     res.Status(),
	})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items must not be empty")
		return
	}
	if limit := s.cfg.Server.MaxBatchItems; len(req.Items) > limit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("too many items: %d (max %d)", len(req.Items), limit))
		return
	}

	items := make([]analysis.Parameters, len(req.Items))
	for i, raw := range req.Items {
		p := analysis.DefaultParameters()
		if err := json.Unmarshal(raw, &p); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("item %d: %v", i, err))
			return
		}
		items[i] = p
	}

	outcomes, err := batch.Run(r.Context(), items, s.cfg.Batch.Workers)
	if err != nil {
		s.logger.Warn("batch aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "batch aborted")
		return
	}

	writeJSON(w, http.StatusOK, batchResponse{
		Count:    len(outcomes),
		Summary:  batch.Summarize(outcomes),
		Outcomes: outcomes,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req reportRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := parameters(req.Parameters)
	if err != nil {
		writeValidation(w, err)
		return
	}

	d := report.New(req.Title, p, s.now())

	var buf bytes.Buffer
	if err := report.Write(&buf, d, format); err != nil {
		s.logger.Error("render dossier", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}

	if s.archive != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := s.archive.Save(ctx, d); err != nil {
			s.logger.Error("archive dossier", zap.String("id", d.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "archive error")
			return
		}
		w.Header().Set("X-Dossier-ID", d.ID)
	}

	s.logger.Info("dossier exported", zap.String("id", d.ID), zap.String("title", d.Title), zap.String("format", string(format)))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(d.Title, string(format))))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleListDossiers(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}

	limit := archive.DefaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	dossiers, err := s.archive.List(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if dossiers == nil {
		dossiers = []report.Dossier{}
	}
	writeJSON(w, http.StatusOK, dossierList{Count: len(dossiers), Dossiers: dossiers})
}

func (s *Server) handleGetDossier(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "archive disabled")
		return
	}

	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	d, err := s.archive.Get(ctx, id)
	if errors.Is(err, archive.ErrNotFound) {
		writeError(w, http.StatusNotFound, "dossier not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}
