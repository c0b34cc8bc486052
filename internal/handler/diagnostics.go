package handler

import (
	"net/http"

	"github.com/osse101/GameVault_Go/internal/observability"
)

// RecentReports is the in-memory feed of recent failures and slow statements
type RecentReports interface {
	Snapshot() []observability.Report
	Errors() []observability.Report
}

// HandleRecentReports lists recent reports, newest first.
// ?slow=true includes slow-statement reports alongside failures.
func HandleRecentReports(recent RecentReports) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reports []observability.Report
		if r.URL.Query().Get("slow") == "true" {
			reports = recent.Snapshot()
		} else {
			reports = recent.Errors()
		}

		newestFirst := make([]observability.Report, len(reports))
		for i, rep := range reports {
			newestFirst[len(reports)-1-i] = rep
		}
		respondJSON(w, http.StatusOK, newList(newestFirst))
	}
}
