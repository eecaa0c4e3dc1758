package handler

import (
	"log/slog"
	"net/http"

	"github.com/mrops-br/saree-catalog-api/internal/infrastructure/http/response"
)

// writeError answers with the route's message for err. Server errors are
// logged with their cause; client errors only at debug level.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, msgs response.Messages) {
	status := response.FromError(w, err, msgs)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), msgs.Internal,
			slog.String("error", err.Error()),
		)
		return
	}
	logger.DebugContext(r.Context(), "Request rejected",
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
}
