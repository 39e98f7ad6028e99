package model

// Department 学部（或部门）表 — 对应 departments
type Department struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex:uq_departments_name" json:"name"`
	PhoneNumber string `gorm:"type:varchar(30)"          json:"phone_number,omitempty"`
	URL         string `gorm:"type:varchar(255)"         json:"url,omitempty"`
	BaseModel

	// 关联（detail 查询时预加载）
	Students    []StudentProfile    `gorm:"foreignKey:DepartmentID;references:ID" json:"students,omitempty"`
	Instructors []InstructorProfile `gorm:"foreignKey:DepartmentID;references:ID" json:"instructors,omitempty"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
