package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
)

const defaultApprovalReason = "新注册成员"

// ProfileProvisioner 按角色开通子档案并决定初始审批状态
// 角色集合封闭，新增角色必须同时补齐这里的所有分支
type ProfileProvisioner struct{}

// NewProfileProvisioner 创建子档案开通器
func NewProfileProvisioner() *ProfileProvisioner {
	return &ProfileProvisioner{}
}

// InitialApproval 返回角色对应的初始审批状态与理由
// 学生注册即通过；教师需管理员人工审批；管理员默认挂起
func (p *ProfileProvisioner) InitialApproval(role model.Role) (model.Approval, string) {
	switch role {
	case model.RoleStudent:
		return model.ApprovalApprove, "学生注册自动通过"
	case model.RoleInstructor:
		return model.ApprovalPending, "教师注册需管理员审批"
	default:
		return model.ApprovalPending, defaultApprovalReason
	}
}

// ValidateDepartment 在写入任何数据之前校验挂靠学部
// 学生/教师必须挂靠已存在的学部；manager 无子档案，返回 nil
func (p *ProfileProvisioner) ValidateDepartment(ctx context.Context, repo *repository.Repository, role model.Role, departmentID int64) (*model.Department, error) {
	if !role.HasProfile() {
		return nil, nil
	}
	if departmentID <= 0 {
		return nil, ErrDepartmentNotFound
	}
	dept, err := repo.Department.GetByID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return dept, nil
}

// Provision 在事务内为成员创建角色子档案
// dept 须已通过 ValidateDepartment 校验；manager 直接返回
func (p *ProfileProvisioner) Provision(ctx context.Context, repo *repository.Repository, member *model.Member, dept *model.Department) error {
	switch member.MemberRole {
	case model.RoleStudent:
		profile := &model.StudentProfile{
			MemberID:     member.ID,
			GroupID:      member.GroupID,
			DepartmentID: dept.ID,
			Department:   dept,
		}
		if err := repo.StudentProfile.Create(ctx, profile); err != nil {
			return err
		}
		member.StudentProfile = profile
		return nil

	case model.RoleInstructor:
		profile := &model.InstructorProfile{
			MemberID:     member.ID,
			GroupID:      member.GroupID,
			DepartmentID: dept.ID,
			Department:   dept,
		}
		if err := repo.InstructorProfile.Create(ctx, profile); err != nil {
			return err
		}
		member.InstructorProfile = profile
		return nil

	case model.RoleManager:
		return nil

	default:
		return fmt.Errorf("未知的成员角色: %q", member.MemberRole)
	}
}
