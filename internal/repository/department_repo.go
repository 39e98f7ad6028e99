package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// DepartmentRepository 学部数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	GetByID(ctx context.Context, id int64) (*model.Department, error)
	GetByIDDetail(ctx context.Context, id int64) (*model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context, offset, limit int) ([]model.Department, int64, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id int64) error
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepo) GetByID(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// GetByIDDetail 带所属学生/教师档案的完整查询
func (r *departmentRepo) GetByIDDetail(ctx context.Context, id int64) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Preload("Students").
		Preload("Instructors").
		Where("id = ?", id).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var dept model.Department
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepo) List(ctx context.Context, offset, limit int) ([]model.Department, int64, error) {
	var depts []model.Department
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Department{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("id ASC").
		Find(&depts).Error; err != nil {
		return nil, 0, err
	}

	return depts, total, nil
}

func (r *departmentRepo) Update(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).
		Omit("Students", "Instructors").
		Save(dept).Error
}

func (r *departmentRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&model.Department{}, id).Error
}
