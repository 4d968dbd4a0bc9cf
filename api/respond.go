package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
)

// errorResponse corps JSON des réponses d'erreur
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON sérialise payload avec le statut donné
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError traduit une erreur applicative en réponse HTTP. Les
// erreurs internes sont loggées avec leur détail mais répondues avec un
// message générique.
func writeError(w http.ResponseWriter, log *logrus.Entry, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.KindConflict:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON décode un corps de requête JSON dans dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid request body: %s", err)
	}
	return nil
}
