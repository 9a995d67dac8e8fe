package httpadapter

import (
	"net/http"

	"github.com/couchcryptid/coastal-data-etl/internal/domain"
)

// handleListSiteYears returns the catalog, optionally filtered by ?region= and ?year=.
func handleListSiteYears(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, domain.Filter(q.Get("region"), q.Get("year")))
}

// handleGetSiteYear resolves {ref} as a catalog ID or a site-year code.
func handleGetSiteYear(w http.ResponseWriter, r *http.Request) {
	s, err := domain.Resolve(r.PathValue("ref"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func handleListRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.Regions())
}
