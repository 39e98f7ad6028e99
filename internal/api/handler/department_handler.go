package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// DepartmentHandler 学部相关接口
type DepartmentHandler struct {
	departmentService service.DepartmentService
}

// NewDepartmentHandler 创建学部 Handler
func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

// Create 创建学部
// POST /api/v1/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	dept, err := h.departmentService.Create(c.Request.Context(), &req)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.Created(c, dept)
}

// List 分页查询学部列表
// GET /api/v1/departments
func (h *DepartmentHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	depts, total, err := h.departmentService.List(c.Request.Context(), &page)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.OKPage(c, depts, total, page.GetPage(), page.GetPageSize())
}

// GetByID 按 ID 查询学部
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.departmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.OK(c, dept)
}

// GetDetail 查询学部详情
// GET /api/v1/departments/:id/detail
func (h *DepartmentHandler) GetDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.departmentService.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.OK(c, dept)
}

// Update 更新学部信息
// PATCH /api/v1/departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	dept, err := h.departmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.OK(c, dept)
}

// Delete 删除学部
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.departmentService.Delete(c.Request.Context(), id); err != nil {
		respondDepartmentError(c, err)
		return
	}
	response.OK(c, nil)
}

// respondDepartmentError 学部域错误到 HTTP 响应的统一映射
func respondDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 21001, err.Error())
	case errors.Is(err, service.ErrDepartmentNameTaken):
		response.Conflict(c, 21002, err.Error())
	case errors.Is(err, service.ErrDepartmentInUse):
		response.Conflict(c, 21003, err.Error())
	default:
		response.InternalError(c)
	}
}
