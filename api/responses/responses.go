package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/sellgrid/sellermock/pkg/errors"
	"github.com/sellgrid/sellermock/pkg/logger"
	"github.com/sellgrid/sellermock/pkg/types"
)

// WritePayload wraps data in the standard {payload, errors} envelope.
func WritePayload(w http.ResponseWriter, data any) {
	WritePayloadStatus(w, http.StatusOK, data)
}

func WritePayloadStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, types.Envelope{Payload: data, Errors: []types.APIError{}})
}

// WriteRaw emits a body without the payload envelope, for the few legacy
// surfaces whose contract predates it.
func WriteRaw(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

// WriteError renders any error as the shared error envelope. Unclassified
// errors become an internal failure with the original message attached as
// details; stack traces never reach the wire.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternalFailure, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeInvalidInput,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeInvalidState:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	entry := types.APIError{
		Code:    string(typed.Code()),
		Message: msg,
	}

	if meta.DetailsAllowed {
		if details := detailsText(typed); details != "" {
			entry.Details = &details
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)

		fields := map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		}

		ctx = logg.WithFields(ctx, fields)
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, types.Envelope{Errors: []types.APIError{entry}})
}

func detailsText(typed *pkgerrors.Error) string {
	if d, ok := typed.Details().(string); ok && d != "" {
		return d
	}
	if cause := typed.Unwrap(); cause != nil {
		return cause.Error()
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
