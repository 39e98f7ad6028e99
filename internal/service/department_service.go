package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
)

var (
	ErrDepartmentNameTaken = errors.New("学部名称已存在")
	ErrDepartmentInUse     = errors.New("学部下仍有成员，无法删除")
)

// DepartmentService 学部业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.DepartmentResponse, error)
	GetDetail(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]*dto.DepartmentResponse, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// Create 创建学部，名称全局唯一
func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if _, err := s.repo.Department.GetByName(ctx, req.Name); err == nil {
		return nil, ErrDepartmentNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept := &model.Department{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		URL:         req.URL,
	}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("学部创建成功", zap.Int64("department_id", dept.ID), zap.String("name", dept.Name))
	return dto.ToDepartmentResponse(dept), nil
}

// GetByID 按 ID 查询学部
func (s *departmentService) GetByID(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return dto.ToDepartmentResponse(dept), nil
}

// GetDetail 查询学部详情（附所属学生/教师数量）
func (s *departmentService) GetDetail(ctx context.Context, id int64) (*dto.DepartmentDetailResponse, error) {
	dept, err := s.repo.Department.GetByIDDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	return dto.ToDepartmentDetailResponse(dept), nil
}

// List 分页查询学部列表
func (s *departmentService) List(ctx context.Context, page *dto.PaginationRequest) ([]*dto.DepartmentResponse, int64, error) {
	depts, total, err := s.repo.Department.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToDepartmentResponseList(depts), total, nil
}

// Update 更新学部信息，改名时校验名称唯一
func (s *departmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != dept.Name {
		if _, err := s.repo.Department.GetByName(ctx, *req.Name); err == nil {
			return nil, ErrDepartmentNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		dept.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		dept.PhoneNumber = *req.PhoneNumber
	}
	if req.URL != nil {
		dept.URL = *req.URL
	}

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		return nil, err
	}

	s.logger.Info("学部信息已更新", zap.Int64("department_id", dept.ID))
	return dto.ToDepartmentResponse(dept), nil
}

// Delete 删除学部；仍有成员挂靠时拒绝删除
func (s *departmentService) Delete(ctx context.Context, id int64) error {
	dept, err := s.repo.Department.GetByIDDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	if len(dept.Students) > 0 || len(dept.Instructors) > 0 {
		return ErrDepartmentInUse
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("学部已删除", zap.Int64("department_id", id))
	return nil
}
