package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/horolog/horolog/application/query"
	"github.com/horolog/horolog/domain/apperror"
)

type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Code       string      `json:"code,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination echoes the applied page window alongside the total match count.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(envelope)
}

func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteJSON(w, statusCode, Envelope{Success: true, Data: data})
}

// Paginated writes a list result with its page window metadata.
func Paginated(w http.ResponseWriter, data interface{}, pg query.Page, total int64) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Page:  pg.Page,
			Limit: pg.Limit,
			Total: total,
			Pages: pg.Pages(total),
		},
	})
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, Envelope{Success: true, Message: message})
}

// FromError maps an application error onto the wire: the taxonomy code and
// message travel to the client, the HTTP status comes from the code.
func FromError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		Error(w, http.StatusInternalServerError, string(apperror.CodeInternal), "internal error")
		return
	}
	Error(w, apperror.HTTPStatus(err), string(appErr.Code), appErr.Message)
}

func Error(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, Envelope{Success: false, Code: code, Message: message})
}

func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, string(apperror.CodeUnauthorized), message)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	Error(w, http.StatusTooManyRequests, string(apperror.CodeRateLimited), message)
}
