package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradejournal/pkg/journal"
)

// maxBodyBytes caps request bodies; imported snapshots are the largest
// payloads and stay well under this.
const maxBodyBytes = 4 << 20

func decodeJSON(r *http.Request, dst any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func journalID(r *http.Request) string {
	return chi.URLParam(r, "journalID")
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) getJournal(w http.ResponseWriter, r *http.Request) {
	view, err := h.core.GetJournal(journalID(r))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.core.Stats(journalID(r))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *handler) setCapital(w http.ResponseWriter, r *http.Request) {
	var payload capitalPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.core.SetInitialCapital(journalID(r), payload.InitialCapital); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *handler) addTrade(w http.ResponseWriter, r *http.Request) {
	var payload addTradePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trade, err := h.core.AddTrade(journalID(r), journal.AddTradeRequest{
		Pair:     payload.Pair,
		Leverage: payload.Leverage,
		Result:   payload.Result,
		Amount:   payload.Amount,
		Date:     payload.Date,
	})
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, trade)
}

func (h *handler) deleteTrade(w http.ResponseWriter, r *http.Request) {
	// Deleting an unknown trade is a no-op by contract, so this always
	// reports deleted.
	if err := h.core.DeleteTrade(journalID(r), chi.URLParam(r, "tradeID")); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handler) closeMonth(w http.ResponseWriter, r *http.Request) {
	record, err := h.core.CloseMonth(journalID(r))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *handler) deleteMonth(w http.ResponseWriter, r *http.Request) {
	if err := h.core.DeleteMonth(journalID(r), chi.URLParam(r, "monthID")); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handler) exportJournal(w http.ResponseWriter, r *http.Request) {
	doc, err := h.core.Export(journalID(r))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", journal.ExportFileName()))
	writeJSON(w, http.StatusOK, doc)
}

func (h *handler) importJournal(w http.ResponseWriter, r *http.Request) {
	var snapshot journal.ImportSnapshot
	if err := decodeJSON(r, &snapshot); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.core.Replace(journalID(r), snapshot)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
