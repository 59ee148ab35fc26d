package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"lifescore/internal/chart"
	"lifescore/internal/core"
	applog "lifescore/internal/log"
)

type saveScoreRequest struct {
	Score int    `json:"score"`
	Date  string `json:"date"` // empty means today
}

type noteRequest struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

type recordResponse struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
	Note  string `json:"note,omitempty"`
}

func toRecordResponses(records []core.ScoreRecord) []recordResponse {
	out := make([]recordResponse, len(records))
	for i, r := range records {
		out[i] = recordResponse{Date: r.Date, Score: r.Score, Note: r.Note}
	}
	return out
}

// handleScores serves the record collection: GET lists newest-first, POST
// saves (today when no date given), DELETE removes by date.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.svc.ListAll(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "List records error", applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to list records")
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponses(records))

	case http.MethodPost:
		var req saveScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var rec core.ScoreRecord
		var err error
		if strings.TrimSpace(req.Date) == "" {
			rec, err = s.svc.SaveToday(r.Context(), req.Score)
		} else {
			rec, err = s.svc.Save(r.Context(), req.Score, req.Date)
		}
		if err != nil {
			s.writeSaveError(w, r, err)
			return
		}
		s.view.RefreshSummary()
		writeJSON(w, http.StatusOK, recordResponse{Date: rec.Date, Score: rec.Score, Note: rec.Note})

	case http.MethodDelete:
		date := r.URL.Query().Get("date")
		rec, err := s.svc.Find(r.Context(), date)
		if err != nil {
			s.writeSaveError(w, r, err)
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "no record for date")
			return
		}
		if err := s.svc.Delete(r.Context(), *rec); err != nil {
			slog.ErrorContext(r.Context(), "Delete record error",
				applog.FieldDate, date, applog.FieldError, err)
			writeError(w, http.StatusInternalServerError, "failed to delete record")
			return
		}
		s.view.RefreshSummary()
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// handleNote replaces the note on an existing record.
func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, "PUT")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.svc.Find(r.Context(), req.Date)
	if err != nil {
		s.writeSaveError(w, r, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "no record for date")
		return
	}

	if err := s.svc.UpdateNote(r.Context(), *rec, req.Note); err != nil {
		slog.ErrorContext(r.Context(), "Update note error",
			applog.FieldDate, req.Date, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}
	s.view.RefreshSummary()

	updated, err := s.svc.Find(r.Context(), req.Date)
	if err != nil || updated == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Date: updated.Date, Score: updated.Score, Note: updated.Note})
}

type summaryResponse struct {
	Month        string  `json:"month"`
	TotalScore   int     `json:"totalScore"`
	RecordCount  int     `json:"recordCount"`
	AverageScore float64 `json:"averageScore"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ym, ok := s.monthParam(w, r)
	if !ok {
		return
	}

	summary, err := s.svc.MonthlySummary(r.Context(), ym)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly summary error",
			applog.FieldMonth, ym.String(), applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "summary unavailable")
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Month:        ym.String(),
		TotalScore:   summary.TotalScore,
		RecordCount:  summary.RecordCount,
		AverageScore: summary.AverageScore,
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ym, ok := s.monthParam(w, r)
	if !ok {
		return
	}
	size := chart.Size{Width: 360, Height: 300}
	if v := r.URL.Query().Get("width"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			size.Width = f
		}
	}
	if v := r.URL.Query().Get("height"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			size.Height = f
		}
	}

	records, err := s.svc.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	slice := core.FilterMonth(records, ym)
	writeJSON(w, http.StatusOK, chart.Project(slice, ym, size, chart.DefaultInsets()))
}

type hitResponse struct {
	Hit  bool   `json:"hit"`
	Date string `json:"date,omitempty"`
	Note string `json:"note,omitempty"`
}

// handleChartHit resolves a tap coordinate against the month's chart.
func (s *Server) handleChartHit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ym, ok := s.monthParam(w, r)
	if !ok {
		return
	}
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y coordinates required")
		return
	}

	records, err := s.svc.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	size := chart.Size{Width: 360, Height: 300}
	projection := chart.Project(core.FilterMonth(records, ym), ym, size, chart.DefaultInsets())
	if pt, ok := chart.HitTest(projection.Points, x, y, chart.DefaultHitRadius); ok {
		writeJSON(w, http.StatusOK, hitResponse{Hit: true, Date: pt.Date, Note: pt.Note})
		return
	}
	writeJSON(w, http.StatusOK, hitResponse{Hit: false})
}

type timelineResponse struct {
	Month      string           `json:"month"`
	MonthLabel string           `json:"monthLabel"`
	Records    []recordResponse `json:"records"`
	MonthSlice []recordResponse `json:"monthSlice"`
	Summary    *summaryResponse `json:"summary"` // null while unavailable
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	snap := s.view.Snapshot()
	resp := timelineResponse{
		Month:      snap.Month.String(),
		MonthLabel: snap.MonthLabel,
		Records:    toRecordResponses(snap.Records),
		MonthSlice: toRecordResponses(snap.MonthSlice),
	}
	if snap.Summary != nil {
		resp.Summary = &summaryResponse{
			Month:        snap.Month.String(),
			TotalScore:   snap.Summary.TotalScore,
			RecordCount:  snap.Summary.RecordCount,
			AverageScore: snap.Summary.AverageScore,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type changeMonthRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleChangeMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req changeMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.view.ChangeMonth(req.Delta)
	snap := s.view.Snapshot()
	writeJSON(w, http.StatusOK, map[string]string{
		"month":      snap.Month.String(),
		"monthLabel": snap.MonthLabel,
	})
}

// monthParam reads the "month" query parameter, defaulting to the current
// target month when absent.
func (s *Server) monthParam(w http.ResponseWriter, r *http.Request) (core.YearMonth, bool) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return s.view.Snapshot().Month, true
	}
	ym, err := core.ParseYearMonth(v)
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be in YYYY-MM form")
		return core.YearMonth{}, false
	}
	return ym, true
}

func (s *Server) writeSaveError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidScore), errors.Is(err, core.ErrMalformedDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Save error", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
	}
}
