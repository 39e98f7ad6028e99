package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
)

func newTestMemberService() (MemberService, *mockMemberRepo, *mockStudentProfileRepo, *mockInstructorProfileRepo, *mockDepartmentRepo) {
	repo, mr, sr, ir, dr := newMockRepository()
	svc := NewMemberService(repo, password.NewHasher(4), zap.NewNop())
	return svc, mr, sr, ir, dr
}

func seedDepartment(t *testing.T, dr *mockDepartmentRepo, name string) *model.Department {
	t.Helper()
	dept := &model.Department{Name: name}
	if err := dr.Create(context.Background(), dept); err != nil {
		t.Fatalf("预置学部失败: %v", err)
	}
	return dept
}

func studentCreateRequest(deptID int64) *dto.CreateMemberRequest {
	return &dto.CreateMemberRequest{
		Name:         "张三",
		Password:     "secret-password",
		Email:        "zhangsan@example.com",
		GroupID:      "A1",
		Sex:          "male",
		Birth:        "2002-03-15",
		MemberRole:   "student",
		DepartmentID: deptID,
	}
}

func TestCreateStudentAutoApproved(t *testing.T) {
	svc, mr, sr, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	resp, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	if resp.Approved != string(model.ApprovalApprove) {
		t.Errorf("期望学生注册即通过审批，实际=%s", resp.Approved)
	}
	if resp.StudentProfile == nil {
		t.Fatal("期望返回学生子档案，实际为空")
	}
	if resp.StudentProfile.Department == nil || resp.StudentProfile.Department.Name != dept.Name {
		t.Errorf("期望子档案挂靠学部 %q，实际=%+v", dept.Name, resp.StudentProfile.Department)
	}

	stored, ok := mr.members[resp.ID]
	if !ok {
		t.Fatal("成员未写入仓储")
	}
	if stored.PasswordHash == "secret-password" {
		t.Error("密码以明文存储")
	}
	if _, ok := sr.profiles[resp.ID]; !ok {
		t.Error("学生子档案未写入仓储")
	}
}

func TestCreateInstructorPendingApproval(t *testing.T) {
	svc, _, _, ir, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "计算机学部")

	req := studentCreateRequest(dept.ID)
	req.MemberRole = "instructor"
	req.Email = "teacher@example.com"
	req.GroupID = "T1"

	resp, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	if resp.Approved != string(model.ApprovalPending) {
		t.Errorf("期望教师注册后处于 pending，实际=%s", resp.Approved)
	}
	if resp.InstructorProfile == nil {
		t.Fatal("期望返回教师子档案，实际为空")
	}
	if _, ok := ir.profiles[resp.ID]; !ok {
		t.Error("教师子档案未写入仓储")
	}
}

func TestCreateManagerWithoutProfile(t *testing.T) {
	svc, _, sr, ir, _ := newTestMemberService()

	req := studentCreateRequest(0)
	req.MemberRole = "manager"
	req.Email = "admin@example.com"
	req.GroupID = "M1"

	resp, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("创建管理员失败: %v", err)
	}
	if resp.StudentProfile != nil || resp.InstructorProfile != nil {
		t.Error("管理员不应有角色子档案")
	}
	if len(sr.profiles) != 0 || len(ir.profiles) != 0 {
		t.Error("管理员注册不应写入任何子档案")
	}
}

func TestCreateDepartmentNotFound(t *testing.T) {
	svc, mr, sr, _, _ := newTestMemberService()

	resp, err := svc.Create(context.Background(), studentCreateRequest(999))
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("期望 ErrDepartmentNotFound，实际=%v", err)
	}
	if resp != nil {
		t.Error("失败时不应返回成员")
	}
	if len(mr.members) != 0 {
		t.Error("学部不存在时不应持久化成员")
	}
	if len(sr.profiles) != 0 {
		t.Error("学部不存在时不应持久化子档案")
	}
}

func TestCreateDuplicateGroupID(t *testing.T) {
	svc, mr, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	if _, err := svc.Create(context.Background(), studentCreateRequest(dept.ID)); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	req := studentCreateRequest(dept.ID)
	req.Email = "another@example.com" // 邮箱不同，学工号相同
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrGroupIDAlreadyTaken) {
		t.Fatalf("期望 ErrGroupIDAlreadyTaken，实际=%v", err)
	}
	if len(mr.members) != 1 {
		t.Errorf("期望仓储中仅有 1 名成员，实际=%d", len(mr.members))
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	if _, err := svc.Create(context.Background(), studentCreateRequest(dept.ID)); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	req := studentCreateRequest(dept.ID)
	req.GroupID = "A2" // 学工号不同，邮箱相同
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrEmailAlreadyTaken) {
		t.Fatalf("期望 ErrEmailAlreadyTaken，实际=%v", err)
	}
}

func TestCreateLostUniquenessRace(t *testing.T) {
	// 预检通过后并发对手先行插入，唯一约束冲突要翻译为用户可纠正的占用错误
	cases := []struct {
		name       string
		constraint string
		onProfile  bool
		want       error
	}{
		{"成员邮箱约束", "uq_members_email", false, ErrEmailAlreadyTaken},
		{"成员学工号约束", "uq_members_group_id", false, ErrGroupIDAlreadyTaken},
		{"学生子档案学工号约束", "uq_student_profiles_group_id", true, ErrGroupIDAlreadyTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mr, sr, _, dr := newTestMemberService()
			dept := seedDepartment(t, dr, "软件工程学部")

			pgErr := &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}
			if tc.onProfile {
				sr.createErr = pgErr
			} else {
				mr.createErr = pgErr
			}

			if _, err := svc.Create(context.Background(), studentCreateRequest(dept.ID)); !errors.Is(err, tc.want) {
				t.Errorf("期望 %v，实际=%v", tc.want, err)
			}
		})
	}

	t.Run("非唯一约束错误原样返回", func(t *testing.T) {
		svc, mr, _, _, dr := newTestMemberService()
		dept := seedDepartment(t, dr, "软件工程学部")

		mr.createErr = &pgconn.PgError{Code: "23503", ConstraintName: "student_profiles_department_id_fkey"}
		_, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
		if err == nil {
			t.Fatal("期望返回错误，实际成功")
		}
		if errors.Is(err, ErrEmailAlreadyTaken) || errors.Is(err, ErrGroupIDAlreadyTaken) {
			t.Errorf("外键错误不应被翻译为占用错误，实际=%v", err)
		}
	})
}

func TestConfirmEmail(t *testing.T) {
	svc, mr, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
	if mr.members[created.ID].EmailConfirmed {
		t.Fatal("新注册成员邮箱不应默认已验证")
	}

	resp, err := svc.ConfirmEmail(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("验证邮箱失败: %v", err)
	}
	if !resp.EmailConfirmed || !mr.members[created.ID].EmailConfirmed {
		t.Error("邮箱验证状态未生效")
	}

	// 幂等
	if _, err := svc.ConfirmEmail(context.Background(), created.ID); err != nil {
		t.Errorf("重复验证应为空操作，实际=%v", err)
	}

	if _, err := svc.ConfirmEmail(context.Background(), 999); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望 ErrMemberNotFound，实际=%v", err)
	}
}

func TestUpdateRequiresOriginalPassword(t *testing.T) {
	svc, mr, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	newName := "李四"
	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateMemberRequest{
		Name:             &newName,
		OriginalPassword: "wrong-password",
	})
	if !errors.Is(err, ErrPasswordUnmatched) {
		t.Fatalf("期望 ErrPasswordUnmatched，实际=%v", err)
	}
	if mr.members[created.ID].Name != "张三" {
		t.Error("凭证校验失败时成员不应被修改")
	}
}

func TestUpdateNameAndPassword(t *testing.T) {
	svc, mr, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	newName := "李四"
	newPassword := "changed-password"
	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateMemberRequest{
		Name:             &newName,
		ChangedPassword:  &newPassword,
		OriginalPassword: "secret-password",
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.Name != newName {
		t.Errorf("期望姓名=%s，实际=%s", newName, resp.Name)
	}

	hasher := password.NewHasher(4)
	if !hasher.Verify(newPassword, mr.members[created.ID].PasswordHash) {
		t.Error("新密码未生效")
	}
	if hasher.Verify("secret-password", mr.members[created.ID].PasswordHash) {
		t.Error("旧密码仍然有效")
	}
}

func TestUpdateMemberNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestMemberService()

	_, err := svc.Update(context.Background(), 42, &dto.UpdateMemberRequest{
		OriginalPassword: "whatever",
	})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("期望 ErrMemberNotFound，实际=%v", err)
	}
}

func TestDeleteRequiresPassword(t *testing.T) {
	svc, mr, sr, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	err = svc.Delete(context.Background(), created.ID, &dto.DeleteMemberRequest{Password: "wrong"})
	if !errors.Is(err, ErrPasswordUnmatched) {
		t.Fatalf("期望 ErrPasswordUnmatched，实际=%v", err)
	}
	if _, ok := mr.members[created.ID]; !ok {
		t.Error("凭证校验失败时成员不应被删除")
	}

	err = svc.Delete(context.Background(), created.ID, &dto.DeleteMemberRequest{Password: "secret-password"})
	if err != nil {
		t.Fatalf("注销失败: %v", err)
	}
	if _, ok := mr.members[created.ID]; ok {
		t.Error("成员本体未删除")
	}
	if _, ok := sr.profiles[created.ID]; ok {
		t.Error("学生子档案未随成员一并删除")
	}
}

func TestCheckValueIsAvailable(t *testing.T) {
	svc, _, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	if _, err := svc.Create(context.Background(), studentCreateRequest(dept.ID)); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	cases := []struct {
		name      string
		checkType CheckType
		value     string
		available bool
	}{
		{"已占用邮箱", CheckTypeEmail, "zhangsan@example.com", false},
		{"空闲邮箱", CheckTypeEmail, "free@example.com", true},
		{"已占用学工号", CheckTypeGroupID, "A1", false},
		{"空闲学工号", CheckTypeGroupID, "B9", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CheckValueIsAvailable(context.Background(), tc.checkType, tc.value)
			if err != nil {
				t.Fatalf("检查失败: %v", err)
			}
			if got != tc.available {
				t.Errorf("期望 available=%v，实际=%v", tc.available, got)
			}
		})
	}

	if _, err := svc.CheckValueIsAvailable(context.Background(), CheckType("phone"), "123"); !errors.Is(err, ErrUnsupportedCheckType) {
		t.Errorf("期望 ErrUnsupportedCheckType，实际=%v", err)
	}
}

func TestSetApprovalRoundTrip(t *testing.T) {
	svc, _, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "计算机学部")

	req := studentCreateRequest(dept.ID)
	req.MemberRole = "instructor"
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	updated, err := svc.SetApproval(context.Background(), &dto.UpdateMemberApprovalRequest{
		ID:             created.ID,
		Approved:       "approve",
		ApprovedReason: "资质审核通过",
	})
	if err != nil {
		t.Fatalf("修改审批状态失败: %v", err)
	}
	if updated.Approved != "approve" || updated.ApprovedReason != "资质审核通过" {
		t.Errorf("审批状态未生效: %+v", updated)
	}

	got, err := svc.GetApproval(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("查询审批状态失败: %v", err)
	}
	if got.Approved != "approve" || got.ApprovedReason != "资质审核通过" {
		t.Errorf("审批状态读写不一致: %+v", got)
	}
}

func TestSetApprovalRejectsUnknownState(t *testing.T) {
	svc, _, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	_, err = svc.SetApproval(context.Background(), &dto.UpdateMemberApprovalRequest{
		ID:             created.ID,
		Approved:       "maybe",
		ApprovedReason: "不在枚举内",
	})
	if err == nil {
		t.Fatal("期望拒绝枚举外的审批状态，实际成功")
	}
}

func TestValidateActiveStudentChain(t *testing.T) {
	svc, mr, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	created, err := svc.Create(context.Background(), studentCreateRequest(dept.ID))
	if err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	// 不存在的成员
	if _, err := svc.ValidateActiveStudent(context.Background(), 999); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望 ErrMemberNotFound，实际=%v", err)
	}

	// 角色不匹配视为不存在
	if _, err := svc.ValidateActiveInstructor(context.Background(), created.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("期望角色不匹配返回 ErrMemberNotFound，实际=%v", err)
	}

	// 审批未通过
	mr.members[created.ID].Approved = model.ApprovalPending
	if _, err := svc.ValidateActiveStudent(context.Background(), created.ID); !errors.Is(err, ErrInvalidMemberApproval) {
		t.Errorf("期望 ErrInvalidMemberApproval，实际=%v", err)
	}

	// 邮箱未验证
	mr.members[created.ID].Approved = model.ApprovalApprove
	mr.members[created.ID].EmailConfirmed = false
	if _, err := svc.ValidateActiveStudent(context.Background(), created.ID); !errors.Is(err, ErrEmailYetConfirmed) {
		t.Errorf("期望 ErrEmailYetConfirmed，实际=%v", err)
	}

	// 全部通过
	mr.members[created.ID].EmailConfirmed = true
	resp, err := svc.ValidateActiveStudent(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("期望校验通过，实际=%v", err)
	}
	if resp.ID != created.ID {
		t.Errorf("期望返回成员 %d，实际=%d", created.ID, resp.ID)
	}
}

func TestListPagination(t *testing.T) {
	svc, _, _, _, dr := newTestMemberService()
	dept := seedDepartment(t, dr, "软件工程学部")

	for i := 0; i < 5; i++ {
		req := studentCreateRequest(dept.ID)
		req.Email = string(rune('a'+i)) + "@example.com"
		req.GroupID = "S" + string(rune('0'+i))
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("创建第 %d 名成员失败: %v", i+1, err)
		}
	}

	list, total, err := svc.List(context.Background(), &dto.PaginationRequest{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("分页查询失败: %v", err)
	}
	if total != 5 {
		t.Errorf("期望 total=5，实际=%d", total)
	}
	if len(list) != 2 {
		t.Fatalf("期望第二页返回 2 条，实际=%d", len(list))
	}
	if list[0].ID != 3 || list[1].ID != 4 {
		t.Errorf("期望第二页为成员 3、4，实际=%d、%d", list[0].ID, list[1].ID)
	}
}
