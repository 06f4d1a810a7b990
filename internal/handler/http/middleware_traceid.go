package http

import (
	"net/http"
	"regexp"

	"github.com/MKhiriev/go-pet-life/internal/utils"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// validTraceID accepts client-supplied ids that are safe to echo and log.
var validTraceID = regexp.MustCompile(`^[A-Za-z0-9_\-]{1,64}$`)

var traceIDs = utils.NewUUIDGenerator()

// withTraceID attaches a request-scoped child logger carrying "trace_id".
// A well-formed X-Trace-ID from the client is reused, otherwise a new
// UUIDv7 is generated. The id is echoed in the response header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !validTraceID.MatchString(traceID) {
			traceID = traceIDs.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
