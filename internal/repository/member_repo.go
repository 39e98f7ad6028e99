package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// MemberRepository 成员数据访问接口
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id int64) (*model.Member, error)
	GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	GetByGroupID(ctx context.Context, groupID string) (*model.Member, error)
	List(ctx context.Context, offset, limit int) ([]model.Member, int64, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id int64) error
}

// memberRepo MemberRepository 的 GORM 实现
type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo 创建 MemberRepository 实例
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).
		Omit("StudentProfile", "InstructorProfile").
		Create(member).Error
}

func (r *memberRepo) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("StudentProfile.Department").
		Preload("InstructorProfile.Department").
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.Member, error) {
	query := r.db.WithContext(ctx).
		Where("id = ? AND member_role = ?", id, role)
	switch role {
	case model.RoleStudent:
		query = query.Preload("StudentProfile.Department")
	case model.RoleInstructor:
		query = query.Preload("InstructorProfile.Department")
	}

	var member model.Member
	if err := query.First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) GetByGroupID(ctx context.Context, groupID string) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Preload("StudentProfile.Department").
		Preload("InstructorProfile.Department").
		Where("group_id = ?", groupID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepo) List(ctx context.Context, offset, limit int) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Member{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("StudentProfile").
		Preload("InstructorProfile").
		Offset(offset).Limit(limit).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepo) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).
		Omit("StudentProfile", "InstructorProfile").
		Save(member).Error
}

func (r *memberRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&model.Member{}, id).Error
}
