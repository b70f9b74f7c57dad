package handler

import (
	"net/http"

	"procurement/internal/service"
	"procurement/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BackupHandler struct {
	backupService service.BackupService
}

func NewBackupHandler(backupService service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

func (h *BackupHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/status", h.GetStatus)
	router.GET("/api/backup", h.ExportBackup)
	router.POST("/api/backup", h.ImportBackup)
	router.DELETE("/api/data", h.ClearAll)
}

// GetStatus reports row counts and whether the session holds any data
// @Summary      Session data status
// @Tags         data
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/status [get]
func (h *BackupHandler) GetStatus(c *gin.Context) {
	status, err := h.backupService.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// ExportBackup downloads every table as an xlsx workbook
// @Summary      Export backup
// @Tags         data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file
// @Failure      500  {object}  response.Response
// @Router       /api/backup [get]
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	file, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, file.Content)
}

// ImportBackup replaces every table with the content of an uploaded workbook
// @Summary      Import backup
// @Description  Missing or malformed sheets restore an empty table. A file that is not a workbook is rejected and nothing changes.
// @Tags         data
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Backup workbook (.xlsx)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/backup [post]
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "file is required"))
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "failed to open upload: "+err.Error()))
		return
	}
	defer f.Close()

	result, err := h.backupService.Import(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ClearAll empties the three tables
// @Summary      Clear all data
// @Tags         data
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/data [delete]
func (h *BackupHandler) ClearAll(c *gin.Context) {
	if err := h.backupService.ClearAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "All data cleared successfully"}))
}
