package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// ExportHandler 数据导出接口
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler 创建导出 Handler
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportMemberRoster 导出成员花名册 Excel
// GET /api/v1/members/export
func (h *ExportHandler) ExportMemberRoster(c *gin.Context) {
	f, err := h.exportService.ExportMemberRoster(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("members_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
