package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
)

// ProfileService 角色子档案查询接口（学生/教师视角的成员检索）
type ProfileService interface {
	GetStudentByID(ctx context.Context, id int64) (*dto.MemberResponse, error)
	GetStudentByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error)
	GetInstructorByID(ctx context.Context, id int64) (*dto.MemberResponse, error)
	GetInstructorByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error)
}

type profileService struct {
	repo *repository.Repository
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository) ProfileService {
	return &profileService{repo: repo}
}

// GetStudentByID 按成员 ID 查询学生（非学生角色视为不存在）
func (s *profileService) GetStudentByID(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	return s.getByIDAndRole(ctx, id, model.RoleStudent)
}

// GetInstructorByID 按成员 ID 查询教师
func (s *profileService) GetInstructorByID(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	return s.getByIDAndRole(ctx, id, model.RoleInstructor)
}

// GetStudentByGroupID 按学号查询学生
func (s *profileService) GetStudentByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error) {
	profile, err := s.repo.StudentProfile.GetByGroupID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.getByIDAndRole(ctx, profile.MemberID, model.RoleStudent)
}

// GetInstructorByGroupID 按工号查询教师
func (s *profileService) GetInstructorByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error) {
	profile, err := s.repo.InstructorProfile.GetByGroupID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.getByIDAndRole(ctx, profile.MemberID, model.RoleInstructor)
}

func (s *profileService) getByIDAndRole(ctx context.Context, id int64, role model.Role) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByIDAndRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return dto.ToMemberResponse(member), nil
}
