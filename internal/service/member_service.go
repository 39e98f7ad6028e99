package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
)

var (
	ErrMemberNotFound        = errors.New("成员不存在")
	ErrGroupIDAlreadyTaken   = errors.New("该学工号已被占用")
	ErrEmailAlreadyTaken     = errors.New("该邮箱已被占用")
	ErrUnsupportedCheckType  = errors.New("不支持的唯一性检查类型")
	ErrDepartmentNotFound    = errors.New("学部不存在")
	ErrPasswordUnmatched     = errors.New("密码不匹配")
	ErrInvalidMemberApproval = errors.New("成员未通过审批")
	ErrEmailYetConfirmed     = errors.New("邮箱尚未验证")
)

// CheckType 唯一性检查的目标字段
type CheckType string

const (
	CheckTypeEmail   CheckType = "email"
	CheckTypeGroupID CheckType = "gid"
)

// ParseCheckType 解析检查类型，拒绝枚举外的值
func ParseCheckType(s string) (CheckType, error) {
	switch CheckType(s) {
	case CheckTypeEmail, CheckTypeGroupID:
		return CheckType(s), nil
	}
	return "", ErrUnsupportedCheckType
}

// MemberService 成员生命周期业务接口
type MemberService interface {
	Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	Delete(ctx context.Context, id int64, req *dto.DeleteMemberRequest) error
	GetByID(ctx context.Context, id int64) (*dto.MemberResponse, error)
	GetByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]*dto.MemberResponse, int64, error)
	CheckValueIsAvailable(ctx context.Context, checkType CheckType, value string) (bool, error)
	GetApproval(ctx context.Context, id int64) (*dto.ApprovalResponse, error)
	SetApproval(ctx context.Context, req *dto.UpdateMemberApprovalRequest) (*dto.ApprovalResponse, error)
	ConfirmEmail(ctx context.Context, id int64) (*dto.MemberResponse, error)
	ValidateActiveStudent(ctx context.Context, id int64) (*dto.MemberResponse, error)
	ValidateActiveInstructor(ctx context.Context, id int64) (*dto.MemberResponse, error)
}

type memberService struct {
	repo        *repository.Repository
	hasher      *password.Hasher
	provisioner *ProfileProvisioner
	logger      *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(repo *repository.Repository, hasher *password.Hasher, logger *zap.Logger) MemberService {
	return &memberService{
		repo:        repo,
		hasher:      hasher,
		provisioner: NewProfileProvisioner(),
		logger:      logger,
	}
}

// Create 注册成员
// 先做学工号/邮箱占用预检，再在事务内写入成员与角色子档案；
// 数据库唯一约束是最终权威，预检只为尽早返回友好错误
func (s *memberService) Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	role, err := model.ParseRole(req.MemberRole)
	if err != nil {
		return nil, err
	}
	sex, err := model.ParseSex(req.Sex)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Member.GetByGroupID(ctx, req.GroupID); err == nil {
		return nil, ErrGroupIDAlreadyTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.Member.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailAlreadyTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dept, err := s.provisioner.ValidateDepartment(ctx, s.repo, role, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	member := &model.Member{
		Name:         req.Name,
		PasswordHash: hash,
		Email:        req.Email,
		GroupID:      req.GroupID,
		Sex:          sex,
		MemberRole:   role,
	}
	if req.Birth != "" {
		birth, err := time.Parse("2006-01-02", req.Birth)
		if err != nil {
			return nil, err
		}
		member.Birth = &birth
	}
	member.Approved, member.ApprovedReason = s.provisioner.InitialApproval(role)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Member.Create(ctx, member); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, translateUniqueViolation(err)
	}
	if err := s.provisioner.Provision(ctx, txRepo, member, dept); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, translateUniqueViolation(err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("成员注册成功",
		zap.Int64("member_id", member.ID),
		zap.String("group_id", member.GroupID),
		zap.String("role", string(member.MemberRole)))

	return dto.ToMemberResponse(member), nil
}

// translateUniqueViolation 把数据库唯一约束冲突翻译为业务占用错误
// 预检与插入之间存在竞争窗口，输掉竞争时同样要返回用户可纠正的错误
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "uq_members_email":
		return ErrEmailAlreadyTaken
	case "uq_members_group_id", "uq_student_profiles_group_id", "uq_instructor_profiles_group_id":
		return ErrGroupIDAlreadyTaken
	}
	return err
}

// Update 更新成员信息
// 仅 name / password / birth 可变；必须用原密码自证身份
func (s *memberService) Update(ctx context.Context, id int64, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if !s.hasher.Verify(req.OriginalPassword, member.PasswordHash) {
		return nil, ErrPasswordUnmatched
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.ChangedPassword != nil {
		hash, err := s.hasher.Hash(*req.ChangedPassword)
		if err != nil {
			return nil, err
		}
		member.PasswordHash = hash
	}
	if req.Birth != nil {
		birth, err := time.Parse("2006-01-02", *req.Birth)
		if err != nil {
			return nil, err
		}
		member.Birth = &birth
	}

	if err := s.repo.Member.Update(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("成员信息已更新", zap.Int64("member_id", member.ID))
	return dto.ToMemberResponse(member), nil
}

// Delete 注销成员
// 须验证本人密码；事务内先清理角色子档案再删除成员本体
func (s *memberService) Delete(ctx context.Context, id int64, req *dto.DeleteMemberRequest) error {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if !s.hasher.Verify(req.Password, member.PasswordHash) {
		return ErrPasswordUnmatched
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	txRepo := s.repo.WithTx(tx)

	switch member.MemberRole {
	case model.RoleStudent:
		if err := txRepo.StudentProfile.DeleteByMemberID(ctx, member.ID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
	case model.RoleInstructor:
		if err := txRepo.InstructorProfile.DeleteByMemberID(ctx, member.ID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
	}

	if err := txRepo.Member.Delete(ctx, member.ID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return err
		}
	}

	s.logger.Info("成员已注销", zap.Int64("member_id", member.ID))
	return nil
}

// GetByID 按 ID 查询成员
func (s *memberService) GetByID(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return dto.ToMemberResponse(member), nil
}

// GetByGroupID 按学工号查询成员
func (s *memberService) GetByGroupID(ctx context.Context, groupID string) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByGroupID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return dto.ToMemberResponse(member), nil
}

// List 分页查询成员列表
func (s *memberService) List(ctx context.Context, page *dto.PaginationRequest) ([]*dto.MemberResponse, int64, error) {
	members, total, err := s.repo.Member.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, err
	}
	return dto.ToMemberResponseList(members), total, nil
}

// CheckValueIsAvailable 检查邮箱/学工号是否可用（未被占用返回 true）
func (s *memberService) CheckValueIsAvailable(ctx context.Context, checkType CheckType, value string) (bool, error) {
	var err error
	switch checkType {
	case CheckTypeEmail:
		_, err = s.repo.Member.GetByEmail(ctx, value)
	case CheckTypeGroupID:
		_, err = s.repo.Member.GetByGroupID(ctx, value)
	default:
		return false, ErrUnsupportedCheckType
	}

	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, err
}

// GetApproval 查询成员当前审批状态
func (s *memberService) GetApproval(ctx context.Context, id int64) (*dto.ApprovalResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &dto.ApprovalResponse{
		ID:             member.ID,
		Approved:       string(member.Approved),
		ApprovedReason: member.ApprovedReason,
	}, nil
}

// SetApproval 管理员修改审批状态，理由必填
func (s *memberService) SetApproval(ctx context.Context, req *dto.UpdateMemberApprovalRequest) (*dto.ApprovalResponse, error) {
	approval, err := model.ParseApproval(req.Approved)
	if err != nil {
		return nil, err
	}

	member, err := s.repo.Member.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	member.Approved = approval
	member.ApprovedReason = req.ApprovedReason
	if err := s.repo.Member.Update(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("成员审批状态已变更",
		zap.Int64("member_id", member.ID),
		zap.String("approved", string(member.Approved)))

	return &dto.ApprovalResponse{
		ID:             member.ID,
		Approved:       string(member.Approved),
		ApprovedReason: member.ApprovedReason,
	}, nil
}

// ConfirmEmail 管理员标记成员邮箱已验证（幂等）
func (s *memberService) ConfirmEmail(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.EmailConfirmed {
		return dto.ToMemberResponse(member), nil
	}

	member.EmailConfirmed = true
	if err := s.repo.Member.Update(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("成员邮箱已验证", zap.Int64("member_id", member.ID))
	return dto.ToMemberResponse(member), nil
}

// ValidateActiveStudent 校验活跃学生
// 依次检查存在性（含角色匹配）、审批通过、邮箱已验证
func (s *memberService) ValidateActiveStudent(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	return s.validateActive(ctx, id, model.RoleStudent)
}

// ValidateActiveInstructor 校验活跃教师
func (s *memberService) ValidateActiveInstructor(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	return s.validateActive(ctx, id, model.RoleInstructor)
}

func (s *memberService) validateActive(ctx context.Context, id int64, role model.Role) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByIDAndRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.Approved != model.ApprovalApprove {
		return nil, ErrInvalidMemberApproval
	}
	if !member.EmailConfirmed {
		return nil, ErrEmailYetConfirmed
	}
	return dto.ToMemberResponse(member), nil
}
