package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/quizhub/internal/common"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out, an encode failure cannot be reported.
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"msg": msg})
}

// decodeValid decodes the JSON body into dst and validates it. A malformed
// body or a failed validation produces a 400 with an errors list; the caller
// just returns on false.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{"malformed json body"}})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		msgs := []string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q validation", fe.Field(), fe.Tag()))
			}
		} else {
			msgs = append(msgs, "invalid request")
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return false
	}

	return true
}

// writeError maps service sentinels onto the wire taxonomy. Anything not in
// the taxonomy is treated as internal: logged with detail, reported
// generically.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeMsg(w, http.StatusBadRequest, common.ErrorInvalidCredentials.Error())
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorForbidden):
		writeMsg(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrorNotFound):
		writeMsg(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorConflict):
		writeMsg(w, http.StatusConflict, "already exists")
	default:
		s.logger.Error(ctx, "internal error", "error", err.Error())
		writeMsg(w, http.StatusInternalServerError, "internal server error")
	}
}
