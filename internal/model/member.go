package model

import "time"

// Member 成员表 — 对应 members
// email 与 group_id 在数据库层有唯一约束；member_role 创建后不可变更
type Member struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"                       json:"id"`
	Name           string     `gorm:"type:varchar(100);not null"                     json:"name"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Email          string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_members_email" json:"email"`
	GroupID        string     `gorm:"type:varchar(50);not null;uniqueIndex:uq_members_group_id" json:"group_id"`
	Sex            Sex        `gorm:"type:varchar(10);not null"                      json:"sex"`
	Birth          *time.Time `gorm:"type:date"                                      json:"birth,omitempty"`
	MemberRole     Role       `gorm:"type:varchar(20);not null"                      json:"member_role"`
	Approved       Approval   `gorm:"type:varchar(20);not null;default:'pending'"    json:"approved"`
	ApprovedReason string     `gorm:"type:text;not null;default:''"                  json:"approved_reason"`
	EmailConfirmed bool       `gorm:"not null;default:false"                         json:"email_confirmed"`
	BaseModel

	// 关联（与角色 1:1，至多其一非空）
	StudentProfile    *StudentProfile    `gorm:"foreignKey:MemberID;references:ID" json:"student_profile,omitempty"`
	InstructorProfile *InstructorProfile `gorm:"foreignKey:MemberID;references:ID" json:"instructor_profile,omitempty"`
}

// TableName 指定表名
func (Member) TableName() string { return "members" }
