package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Member            MemberRepository
	StudentProfile    StudentProfileRepository
	InstructorProfile InstructorProfileRepository
	Department        DepartmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:                db,
		Member:            NewMemberRepo(db),
		StudentProfile:    NewStudentProfileRepo(db),
		InstructorProfile: NewInstructorProfileRepo(db),
		Department:        NewDepartmentRepo(db),
	}
}

// BeginTx 开启事务（工作单元边界）
// db 为空时（mock 仓储测试场景）返回 nil 事务，WithTx 对 nil 事务原样返回
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
