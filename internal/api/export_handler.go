package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"alcyxob/fitlocal/internal/export"
	"alcyxob/fitlocal/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// DownloadExport streams every logged set as an xlsx workbook.
// GET /api/v1/export
func (h *ExportHandler) DownloadExport(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	// the filename is only known once the workbook is rendered
	var buf bytes.Buffer
	filename, err := h.exportService.Write(c.Request.Context(), profileID, &buf)
	if err != nil {
		log.Errorf("export for %s: %s", profileID, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to export workout log")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// ArchiveExport godoc
// @Summary Upload the export to object storage and return a presigned link
// @Tags Export
// @Produce json
// @Success 201 {object} service.ArchivedExport
// @Failure 501 {object} gin.H "Object storage not configured"
// @Router /export/archive [post]
func (h *ExportHandler) ArchiveExport(c *gin.Context) {
	profileID, ok := mustProfileID(c)
	if !ok {
		return
	}

	archived, err := h.exportService.Archive(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			abortWithError(c, http.StatusNotImplemented, err.Error())
		} else {
			log.Errorf("archive export for %s: %s", profileID, err)
			abortWithError(c, http.StatusBadGateway, "Failed to archive export")
		}
		return
	}
	c.JSON(http.StatusCreated, archived)
}
