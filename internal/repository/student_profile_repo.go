package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// StudentProfileRepository 学生子档案数据访问接口
type StudentProfileRepository interface {
	Create(ctx context.Context, profile *model.StudentProfile) error
	GetByMemberID(ctx context.Context, memberID int64) (*model.StudentProfile, error)
	GetByGroupID(ctx context.Context, groupID string) (*model.StudentProfile, error)
	DeleteByMemberID(ctx context.Context, memberID int64) error
}

// studentProfileRepo StudentProfileRepository 的 GORM 实现
type studentProfileRepo struct {
	db *gorm.DB
}

// NewStudentProfileRepo 创建 StudentProfileRepository 实例
func NewStudentProfileRepo(db *gorm.DB) StudentProfileRepository {
	return &studentProfileRepo{db: db}
}

func (r *studentProfileRepo) Create(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).
		Omit("Department").
		Create(profile).Error
}

func (r *studentProfileRepo) GetByMemberID(ctx context.Context, memberID int64) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("member_id = ?", memberID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *studentProfileRepo) GetByGroupID(ctx context.Context, groupID string) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("group_id = ?", groupID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *studentProfileRepo) DeleteByMemberID(ctx context.Context, memberID int64) error {
	return r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&model.StudentProfile{}).Error
}
