package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/importexport"
	"github.com/freeeve/geoindex/internal/service"
)

// AdminHandler serves the JWT-protected admin endpoints: import, export,
// and stats.
type AdminHandler struct {
	eng       *engine.Engine
	importSvc *service.ImportService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(eng *engine.Engine, importSvc *service.ImportService) *AdminHandler {
	return &AdminHandler{eng: eng, importSvc: importSvc}
}

// Import handles POST /api/v1/admin/import: a multipart upload with the
// CSV file under the "file" field, flavor auto-detected.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	source := header.Filename
	if source == "" {
		source = "upload"
	}

	report, flavor, err := h.importSvc.Import(r.Context(), file, source)
	if err != nil {
		log.Error().Err(err).Msg("import failed")
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ingested": report.Ingested,
			"skipped":  report.Skipped,
			"errors":   append(report.Errors, err.Error()),
			"error":    err.Error(),
		})
		return
	}

	flavorName := "denorm"
	if flavor == importexport.Tree {
		flavorName = "tree"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ingested": report.Ingested,
		"skipped":  report.Skipped,
		"errors":   report.Errors,
		"flavor":   flavorName,
	})
}

// Export handles GET /api/v1/admin/export?mode=tree|denorm.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	records := h.eng.Registry().All()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=geoindex-export.csv")

	var err error
	switch mode {
	case "tree":
		err = importexport.WriteTree(w, records)
	case "denorm", "":
		err = importexport.WriteDenormalized(w, records)
	default:
		writeError(w, http.StatusBadRequest, "mode must be 'tree' or 'denorm'")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("export failed")
	}
}

// Stats handles GET /api/v1/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.eng.Stats())
}
