package dto

import (
	"time"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// CreateMemberRequest 注册成员请求
// student/instructor 必须携带 department_id，manager 无子档案
type CreateMemberRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	Password     string `json:"password" binding:"required,min=8,max=64"`
	Email        string `json:"email" binding:"required,email"`
	GroupID      string `json:"group_id" binding:"required,min=1,max=50"`
	Sex          string `json:"sex" binding:"required,oneof=male female"`
	Birth        string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
	MemberRole   string `json:"member_role" binding:"required,oneof=student instructor manager"`
	DepartmentID int64  `json:"department_id" binding:"omitempty,min=1"`
}

// UpdateMemberRequest 更新成员请求
// 仅 name / password / birth 可变；必须携带原密码凭证
type UpdateMemberRequest struct {
	Name             *string `json:"name" binding:"omitempty,min=1,max=100"`
	ChangedPassword  *string `json:"changed_password" binding:"omitempty,min=8,max=64"`
	OriginalPassword string  `json:"original_password" binding:"required"`
	Birth            *string `json:"birth" binding:"omitempty,datetime=2006-01-02"`
}

// DeleteMemberRequest 注销成员请求，须验证本人密码
type DeleteMemberRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdateMemberApprovalRequest 管理员修改审批状态请求
type UpdateMemberApprovalRequest struct {
	ID             int64  `json:"id" binding:"required,min=1"`
	Approved       string `json:"approved" binding:"required,oneof=pending approve reject"`
	ApprovedReason string `json:"approved_reason" binding:"required"`
}

// DepartmentBrief 子档案里内嵌的学部简要信息
type DepartmentBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProfileResponse 角色子档案响应
type ProfileResponse struct {
	GroupID    string           `json:"group_id"`
	Department *DepartmentBrief `json:"department,omitempty"`
}

// MemberResponse 成员信息响应（不含密码散列）
type MemberResponse struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	Email             string           `json:"email"`
	GroupID           string           `json:"group_id"`
	Sex               string           `json:"sex"`
	Birth             string           `json:"birth,omitempty"`
	MemberRole        string           `json:"member_role"`
	Approved          string           `json:"approved"`
	ApprovedReason    string           `json:"approved_reason"`
	EmailConfirmed    bool             `json:"email_confirmed"`
	StudentProfile    *ProfileResponse `json:"student_profile,omitempty"`
	InstructorProfile *ProfileResponse `json:"instructor_profile,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ApprovalResponse 审批状态响应
type ApprovalResponse struct {
	ID             int64  `json:"id"`
	Approved       string `json:"approved"`
	ApprovedReason string `json:"approved_reason"`
}

// CheckAvailableResponse 唯一值可用性检查响应
type CheckAvailableResponse struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Available bool   `json:"available"`
}

// ToMemberResponse 将成员模型转换为响应对象
func ToMemberResponse(m *model.Member) *MemberResponse {
	resp := &MemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		GroupID:        m.GroupID,
		Sex:            string(m.Sex),
		MemberRole:     string(m.MemberRole),
		Approved:       string(m.Approved),
		ApprovedReason: m.ApprovedReason,
		EmailConfirmed: m.EmailConfirmed,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Birth != nil {
		resp.Birth = m.Birth.Format("2006-01-02")
	}
	if m.StudentProfile != nil {
		resp.StudentProfile = &ProfileResponse{GroupID: m.StudentProfile.GroupID}
		if d := m.StudentProfile.Department; d != nil {
			resp.StudentProfile.Department = &DepartmentBrief{ID: d.ID, Name: d.Name}
		}
	}
	if m.InstructorProfile != nil {
		resp.InstructorProfile = &ProfileResponse{GroupID: m.InstructorProfile.GroupID}
		if d := m.InstructorProfile.Department; d != nil {
			resp.InstructorProfile.Department = &DepartmentBrief{ID: d.ID, Name: d.Name}
		}
	}
	return resp
}

// ToMemberResponseList 批量转换
func ToMemberResponseList(members []model.Member) []*MemberResponse {
	list := make([]*MemberResponse, 0, len(members))
	for i := range members {
		list = append(list, ToMemberResponse(&members[i]))
	}
	return list
}
