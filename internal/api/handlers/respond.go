package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgValidation    = "ошибка валидации"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DecodeJSON читает JSON тело запроса в dst, неизвестные поля запрещены
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if decoder.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidation отправляет 400 с ошибками по полям
func RespondValidation(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		RespondBadRequest(w, msgValidation)
		return
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: msgValidation,
		Fields:  verr.Fields,
	})
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondPolicyViolation отправляет 422 с описанием нарушенной политики
func RespondPolicyViolation(w http.ResponseWriter, err error) {
	var perr *domain.PolicyViolationError
	if errors.As(err, &perr) {
		RespondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: perr.Reason,
			Fields:  map[string]string{"policy": perr.Policy},
		})
		return
	}
	RespondUnprocessable(w, err.Error())
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
