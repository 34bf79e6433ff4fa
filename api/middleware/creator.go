package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/griphyn/agent-backend/api/responses"
	pkgerrors "github.com/griphyn/agent-backend/pkg/errors"
	"github.com/griphyn/agent-backend/pkg/logger"
)

const creatorIDHeader = "X-Creator-Id"

// Creator resolves the acting creator from the gateway-injected header.
// Identity verification happens upstream; this only validates shape.
func Creator(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(creatorIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "creator id header is required").WithDetails(map[string]any{"header": creatorIDHeader}))
				return
			}

			creatorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid creator id"))
				return
			}

			ctx := WithCreatorID(r.Context(), creatorID.String())
			if logg != nil {
				ctx = logg.WithCreatorID(ctx, creatorID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
