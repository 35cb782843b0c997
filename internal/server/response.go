package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Decentr-net/blockconnect/internal/middleware"
	"github.com/Decentr-net/blockconnect/internal/service"
)

var log = logrus.WithField("package", "server")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

var errInvalidRequest = errors.New("invalid request")

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeInternalErrorf(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	middleware.GetLogger(ctx).Errorf(format, args...)

	writeError(w, http.StatusInternalServerError, "internal error")
}

// writeServiceError maps service errors to http statuses.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, errInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "wallet is not connected")
	case errors.Is(err, service.ErrIneligible):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeInternalErrorf(ctx, w, "failed to %s: %s", action, err.Error())
	}
}

func bind(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode body: %s", errInvalidRequest, err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidRequest, err)
	}

	return nil
}
