package handler

import (
	"net/http"
	"strconv"

	"health-marketplace-backend/internal/usecase"
	"health-marketplace-backend/pkg/response"
)

type AuditLogHandler struct {
	auditUsecase usecase.AuditUsecase
}

func NewAuditLogHandler(auditUsecase usecase.AuditUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditUsecase: auditUsecase}
}

// ListRecent returns the newest audit entries, capped by the limit query
// parameter.
func (h *AuditLogHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.auditUsecase.ListRecent(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
