package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
)

func newTestDepartmentService() (DepartmentService, *mockDepartmentRepo) {
	repo, _, _, _, dr := newMockRepository()
	return NewDepartmentService(repo, zap.NewNop()), dr
}

func TestCreateDepartment(t *testing.T) {
	svc, dr := newTestDepartmentService()

	resp, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:        "软件工程学部",
		PhoneNumber: "02-1234-5678",
	})
	if err != nil {
		t.Fatalf("创建学部失败: %v", err)
	}
	if resp.ID == 0 {
		t.Error("期望分配学部 ID")
	}
	if _, ok := dr.departments[resp.ID]; !ok {
		t.Error("学部未写入仓储")
	}
}

func TestCreateDepartmentNameTaken(t *testing.T) {
	svc, _ := newTestDepartmentService()

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "软件工程学部"}); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "软件工程学部"})
	if !errors.Is(err, ErrDepartmentNameTaken) {
		t.Fatalf("期望 ErrDepartmentNameTaken，实际=%v", err)
	}
}

func TestUpdateDepartmentNameConflict(t *testing.T) {
	svc, _ := newTestDepartmentService()

	first, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "软件工程学部"})
	if err != nil {
		t.Fatalf("创建学部失败: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "计算机学部"}); err != nil {
		t.Fatalf("创建学部失败: %v", err)
	}

	taken := "计算机学部"
	if _, err := svc.Update(context.Background(), first.ID, &dto.UpdateDepartmentRequest{Name: &taken}); !errors.Is(err, ErrDepartmentNameTaken) {
		t.Fatalf("期望 ErrDepartmentNameTaken，实际=%v", err)
	}

	// 改成未占用的名称可以成功
	free := "人工智能学部"
	updated, err := svc.Update(context.Background(), first.ID, &dto.UpdateDepartmentRequest{Name: &free})
	if err != nil {
		t.Fatalf("更新学部失败: %v", err)
	}
	if updated.Name != free {
		t.Errorf("期望名称=%s，实际=%s", free, updated.Name)
	}
}

func TestDeleteDepartmentInUse(t *testing.T) {
	svc, dr := newTestDepartmentService()

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "软件工程学部"})
	if err != nil {
		t.Fatalf("创建学部失败: %v", err)
	}

	// 仍有学生挂靠时拒绝删除
	dr.departments[created.ID].Students = []model.StudentProfile{{MemberID: 1, GroupID: "A1", DepartmentID: created.ID}}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrDepartmentInUse) {
		t.Fatalf("期望 ErrDepartmentInUse，实际=%v", err)
	}

	dr.departments[created.ID].Students = nil
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("删除学部失败: %v", err)
	}
	if _, ok := dr.departments[created.ID]; ok {
		t.Error("学部未被删除")
	}
}

func TestDepartmentNotFound(t *testing.T) {
	svc, _ := newTestDepartmentService()

	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际=%v", err)
	}
	if err := svc.Delete(context.Background(), 404); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际=%v", err)
	}
}
