package handler

import (
	"context"
	"log/slog"
	"net/http"

	"go-auth-service/pkg/apierror"
)

// Pinger is the liveness contract of a backing store.
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports liveness. A failing database ping turns it into a 503 so
// orchestrators stop routing traffic here.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		slog.Error("health check failed", "error", err)
		apiErr := apierror.New(http.StatusServiceUnavailable,
			apierror.NewResponse("service unhealthy").
				WithCode(apierror.CodeDatabase).
				WithKind(apierror.KindDatabase))
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
