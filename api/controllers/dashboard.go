package controllers

import (
	"net/http"

	"github.com/dapursupply/erp-backend/api/responses"
	"github.com/dapursupply/erp-backend/internal/dashboard"
	"github.com/dapursupply/erp-backend/pkg/logger"
)

// DashboardSummary serves the aggregated business overview, from cache when
// one is configured.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
