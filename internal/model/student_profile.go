package model

// StudentProfile 学生子档案 — 对应 student_profiles
// 主键即 member_id，与 Member 1:1；持有对 Department 的非拥有引用
type StudentProfile struct {
	MemberID     int64  `gorm:"primaryKey"                 json:"member_id"`
	GroupID      string `gorm:"type:varchar(50);not null;uniqueIndex:uq_student_profiles_group_id" json:"group_id"`
	DepartmentID int64  `gorm:"not null"                   json:"department_id"`
	BaseModel

	Department *Department `gorm:"foreignKey:DepartmentID;references:ID" json:"department,omitempty"`
}

// TableName 指定表名
func (StudentProfile) TableName() string { return "student_profiles" }
