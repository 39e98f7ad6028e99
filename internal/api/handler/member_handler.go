package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// MemberHandler 成员相关接口
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler 创建成员 Handler
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// Create 注册成员
// POST /api/v1/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), &req)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.Created(c, member)
}

// Update 更新当前登录成员的信息（须携带原密码）
// PATCH /api/v1/members
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), currentMemberID(c), &req)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// Delete 注销当前登录成员（须验证密码）
// DELETE /api/v1/members
func (h *MemberHandler) Delete(c *gin.Context) {
	var req dto.DeleteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), currentMemberID(c), &req); err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, nil)
}

// List 分页查询成员列表
// GET /api/v1/members
func (h *MemberHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "分页参数无效")
		return
	}

	members, total, err := h.memberService.List(c.Request.Context(), &page)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OKPage(c, members, total, page.GetPage(), page.GetPageSize())
}

// GetByID 按 ID 查询成员
// GET /api/v1/members/:id
func (h *MemberHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// GetByGroupID 按学工号查询成员
// GET /api/v1/members/gid/:gid
func (h *MemberHandler) GetByGroupID(c *gin.Context) {
	member, err := h.memberService.GetByGroupID(c.Request.Context(), c.Param("gid"))
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// CheckValueIsAvailable 注册前的唯一值可用性检查
// GET /api/v1/members/check/:type/:value
func (h *MemberHandler) CheckValueIsAvailable(c *gin.Context) {
	checkType, err := service.ParseCheckType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, 20004, err.Error())
		return
	}
	value := c.Param("value")
	if value == "" {
		response.BadRequest(c, 10001, "检查值不能为空")
		return
	}

	available, err := h.memberService.CheckValueIsAvailable(c.Request.Context(), checkType, value)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, &dto.CheckAvailableResponse{
		Type:      string(checkType),
		Value:     value,
		Available: available,
	})
}

// GetApproval 查询成员审批状态
// GET /api/v1/members/:id/approval
func (h *MemberHandler) GetApproval(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	approval, err := h.memberService.GetApproval(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, approval)
}

// SetApproval 管理员修改成员审批状态
// PATCH /api/v1/members/approval
func (h *MemberHandler) SetApproval(c *gin.Context) {
	var req dto.UpdateMemberApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败: "+err.Error())
		return
	}

	approval, err := h.memberService.SetApproval(c.Request.Context(), &req)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, approval)
}

// ConfirmEmail 管理员标记成员邮箱已验证
// PATCH /api/v1/members/:id/email-confirmation
func (h *MemberHandler) ConfirmEmail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.ConfirmEmail(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// respondMemberError 成员域错误到 HTTP 响应的统一映射
func respondMemberError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrGroupIDAlreadyTaken):
		response.Conflict(c, 20002, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyTaken):
		response.Conflict(c, 20003, err.Error())
	case errors.Is(err, service.ErrUnsupportedCheckType):
		response.BadRequest(c, 20004, err.Error())
	case errors.Is(err, service.ErrPasswordUnmatched):
		response.Forbidden(c, 20005, err.Error())
	case errors.Is(err, service.ErrInvalidMemberApproval):
		response.Forbidden(c, 20006, err.Error())
	case errors.Is(err, service.ErrEmailYetConfirmed):
		response.Forbidden(c, 20007, err.Error())
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, 21001, err.Error())
	default:
		response.InternalError(c)
	}
}
