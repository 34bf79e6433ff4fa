package controllers

import (
	"net/http"

	"github.com/griphyn/agent-backend/api/responses"
	"github.com/griphyn/agent-backend/internal/calendar"
	"github.com/griphyn/agent-backend/pkg/logger"
)

// ListCalendar returns the content calendar derived from open deals.
func ListCalendar(svc calendar.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorID, err := creatorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.List(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
