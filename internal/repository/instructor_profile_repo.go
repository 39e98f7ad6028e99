package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// InstructorProfileRepository 教师子档案数据访问接口
type InstructorProfileRepository interface {
	Create(ctx context.Context, profile *model.InstructorProfile) error
	GetByMemberID(ctx context.Context, memberID int64) (*model.InstructorProfile, error)
	GetByGroupID(ctx context.Context, groupID string) (*model.InstructorProfile, error)
	DeleteByMemberID(ctx context.Context, memberID int64) error
}

// instructorProfileRepo InstructorProfileRepository 的 GORM 实现
type instructorProfileRepo struct {
	db *gorm.DB
}

// NewInstructorProfileRepo 创建 InstructorProfileRepository 实例
func NewInstructorProfileRepo(db *gorm.DB) InstructorProfileRepository {
	return &instructorProfileRepo{db: db}
}

func (r *instructorProfileRepo) Create(ctx context.Context, profile *model.InstructorProfile) error {
	return r.db.WithContext(ctx).
		Omit("Department").
		Create(profile).Error
}

func (r *instructorProfileRepo) GetByMemberID(ctx context.Context, memberID int64) (*model.InstructorProfile, error) {
	var profile model.InstructorProfile
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("member_id = ?", memberID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *instructorProfileRepo) GetByGroupID(ctx context.Context, groupID string) (*model.InstructorProfile, error) {
	var profile model.InstructorProfile
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("group_id = ?", groupID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *instructorProfileRepo) DeleteByMemberID(ctx context.Context, memberID int64) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&model.InstructorProfile{}).Error
}
