package model

import "fmt"

// ── 成员角色 ──

// Role 成员角色，创建时确定且不可变更
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleManager    Role = "manager"
)

// ParseRole 解析角色字符串，拒绝枚举外的值
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleManager:
		return Role(s), nil
	}
	return "", fmt.Errorf("未知的成员角色: %q", s)
}

// HasProfile 该角色是否拥有子档案（manager 无子档案）
func (r Role) HasProfile() bool {
	return r == RoleStudent || r == RoleInstructor
}

// ── 性别 ──

// Sex 性别枚举
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex 解析性别字符串
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case SexMale, SexFemale:
		return Sex(s), nil
	}
	return "", fmt.Errorf("未知的性别: %q", s)
}

// ── 审批状态 ──

// Approval 审批状态，封闭枚举
// pending 阻止活跃性校验通过，approve 放行，reject 表示被拒绝/停用（附必填理由）
type Approval string

const (
	ApprovalPending Approval = "pending"
	ApprovalApprove Approval = "approve"
	ApprovalReject  Approval = "reject"
)

// ParseApproval 解析审批状态字符串，拒绝枚举外的值
func ParseApproval(s string) (Approval, error) {
	switch Approval(s) {
	case ApprovalPending, ApprovalApprove, ApprovalReject:
		return Approval(s), nil
	}
	return "", fmt.Errorf("未知的审批状态: %q", s)
}
