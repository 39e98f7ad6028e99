package dto

import (
	"time"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

// CreateDepartmentRequest 创建学部请求
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=30"`
	URL         string `json:"url" binding:"omitempty,url,max=255"`
}

// UpdateDepartmentRequest 更新学部请求
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=50"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=30"`
	URL         *string `json:"url" binding:"omitempty,url,max=255"`
}

// DepartmentResponse 学部信息响应
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DepartmentDetailResponse 学部详情响应，附所属学生/教师数量
type DepartmentDetailResponse struct {
	DepartmentResponse
	StudentCount    int `json:"student_count"`
	InstructorCount int `json:"instructor_count"`
}

// ToDepartmentResponse 将学部模型转换为响应对象
func ToDepartmentResponse(d *model.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		PhoneNumber: d.PhoneNumber,
		URL:         d.URL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDepartmentDetailResponse 附计数的详情转换
func ToDepartmentDetailResponse(d *model.Department) *DepartmentDetailResponse {
	return &DepartmentDetailResponse{
		DepartmentResponse: *ToDepartmentResponse(d),
		StudentCount:       len(d.Students),
		InstructorCount:    len(d.Instructors),
	}
}

// ToDepartmentResponseList 批量转换
func ToDepartmentResponseList(depts []model.Department) []*DepartmentResponse {
	list := make([]*DepartmentResponse, 0, len(depts))
	for i := range depts {
		list = append(list, ToDepartmentResponse(&depts[i]))
	}
	return list
}
