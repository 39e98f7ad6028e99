package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
)

// ── 内存 mock 仓储 ──
// db 为 nil 时 Repository.BeginTx 返回 nil 事务，事务路径对 mock 透明

type mockMemberRepo struct {
	members   map[int64]*model.Member
	nextID    int64
	createErr error // 注入 Create 失败，模拟数据库层错误
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[int64]*model.Member), nextID: 1}
}

func (m *mockMemberRepo) Create(_ context.Context, member *model.Member) error {
	if m.createErr != nil {
		return m.createErr
	}
	member.ID = m.nextID
	m.nextID++
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(_ context.Context, id int64) (*model.Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (m *mockMemberRepo) GetByIDAndRole(_ context.Context, id int64, role model.Role) (*model.Member, error) {
	member, ok := m.members[id]
	if !ok || member.MemberRole != role {
		return nil, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (m *mockMemberRepo) GetByEmail(_ context.Context, email string) (*model.Member, error) {
	for _, member := range m.members {
		if member.Email == email {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByGroupID(_ context.Context, groupID string) (*model.Member, error) {
	for _, member := range m.members {
		if member.GroupID == groupID {
			return member, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) List(_ context.Context, offset, limit int) ([]model.Member, int64, error) {
	all := make([]model.Member, 0, len(m.members))
	for id := int64(1); id < m.nextID; id++ {
		if member, ok := m.members[id]; ok {
			all = append(all, *member)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.Member) error {
	if _, ok := m.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) Delete(_ context.Context, id int64) error {
	delete(m.members, id)
	return nil
}

type mockStudentProfileRepo struct {
	profiles  map[int64]*model.StudentProfile
	createErr error
}

func newMockStudentProfileRepo() *mockStudentProfileRepo {
	return &mockStudentProfileRepo{profiles: make(map[int64]*model.StudentProfile)}
}

func (m *mockStudentProfileRepo) Create(_ context.Context, profile *model.StudentProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.profiles[profile.MemberID] = profile
	return nil
}

func (m *mockStudentProfileRepo) GetByMemberID(_ context.Context, memberID int64) (*model.StudentProfile, error) {
	profile, ok := m.profiles[memberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockStudentProfileRepo) GetByGroupID(_ context.Context, groupID string) (*model.StudentProfile, error) {
	for _, profile := range m.profiles {
		if profile.GroupID == groupID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentProfileRepo) DeleteByMemberID(_ context.Context, memberID int64) error {
	delete(m.profiles, memberID)
	return nil
}

type mockInstructorProfileRepo struct {
	profiles map[int64]*model.InstructorProfile
}

func newMockInstructorProfileRepo() *mockInstructorProfileRepo {
	return &mockInstructorProfileRepo{profiles: make(map[int64]*model.InstructorProfile)}
}

func (m *mockInstructorProfileRepo) Create(_ context.Context, profile *model.InstructorProfile) error {
	m.profiles[profile.MemberID] = profile
	return nil
}

func (m *mockInstructorProfileRepo) GetByMemberID(_ context.Context, memberID int64) (*model.InstructorProfile, error) {
	profile, ok := m.profiles[memberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockInstructorProfileRepo) GetByGroupID(_ context.Context, groupID string) (*model.InstructorProfile, error) {
	for _, profile := range m.profiles {
		if profile.GroupID == groupID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInstructorProfileRepo) DeleteByMemberID(_ context.Context, memberID int64) error {
	delete(m.profiles, memberID)
	return nil
}

type mockDepartmentRepo struct {
	departments map[int64]*model.Department
	nextID      int64
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{departments: make(map[int64]*model.Department), nextID: 1}
}

func (m *mockDepartmentRepo) Create(_ context.Context, dept *model.Department) error {
	dept.ID = m.nextID
	m.nextID++
	m.departments[dept.ID] = dept
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id int64) (*model.Department, error) {
	dept, ok := m.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dept, nil
}

func (m *mockDepartmentRepo) GetByIDDetail(_ context.Context, id int64) (*model.Department, error) {
	dept, ok := m.departments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return dept, nil
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, dept := range m.departments {
		if dept.Name == name {
			return dept, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context, offset, limit int) ([]model.Department, int64, error) {
	all := make([]model.Department, 0, len(m.departments))
	for id := int64(1); id < m.nextID; id++ {
		if dept, ok := m.departments[id]; ok {
			all = append(all, *dept)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, dept *model.Department) error {
	if _, ok := m.departments[dept.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.departments[dept.ID] = dept
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id int64) error {
	delete(m.departments, id)
	return nil
}

// newMockRepository 组装全 mock 的仓储聚合
func newMockRepository() (*repository.Repository, *mockMemberRepo, *mockStudentProfileRepo, *mockInstructorProfileRepo, *mockDepartmentRepo) {
	memberRepo := newMockMemberRepo()
	studentRepo := newMockStudentProfileRepo()
	instructorRepo := newMockInstructorProfileRepo()
	deptRepo := newMockDepartmentRepo()

	repo := &repository.Repository{
		Member:            memberRepo,
		StudentProfile:    studentRepo,
		InstructorProfile: instructorRepo,
		Department:        deptRepo,
	}
	return repo, memberRepo, studentRepo, instructorRepo, deptRepo
}
