package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/2023-Capston-Design/Backend-RE/internal/service"
	"github.com/2023-Capston-Design/Backend-RE/pkg/response"
)

// ProfileHandler 学生/教师子档案视角的查询接口
type ProfileHandler struct {
	profileService service.ProfileService
	memberService  service.MemberService
}

// NewProfileHandler 创建子档案 Handler
func NewProfileHandler(profileService service.ProfileService, memberService service.MemberService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		memberService:  memberService,
	}
}

// GetStudentByID 按成员 ID 查询学生
// GET /api/v1/students/:id
func (h *ProfileHandler) GetStudentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.profileService.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// GetStudentByGroupID 按学号查询学生
// GET /api/v1/students/gid/:gid
func (h *ProfileHandler) GetStudentByGroupID(c *gin.Context) {
	member, err := h.profileService.GetStudentByGroupID(c.Request.Context(), c.Param("gid"))
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// ValidateActiveStudent 校验活跃学生（存在、审批通过、邮箱已验证）
// GET /api/v1/students/:id/active
func (h *ProfileHandler) ValidateActiveStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.ValidateActiveStudent(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// GetInstructorByID 按成员 ID 查询教师
// GET /api/v1/instructors/:id
func (h *ProfileHandler) GetInstructorByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.profileService.GetInstructorByID(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// GetInstructorByGroupID 按工号查询教师
// GET /api/v1/instructors/gid/:gid
func (h *ProfileHandler) GetInstructorByGroupID(c *gin.Context) {
	member, err := h.profileService.GetInstructorByGroupID(c.Request.Context(), c.Param("gid"))
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}

// ValidateActiveInstructor 校验活跃教师
// GET /api/v1/instructors/:id/active
func (h *ProfileHandler) ValidateActiveInstructor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.ValidateActiveInstructor(c.Request.Context(), id)
	if err != nil {
		respondMemberError(c, err)
		return
	}
	response.OK(c, member)
}
