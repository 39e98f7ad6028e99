package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/config"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
)

// EnsureBootstrapManager 保证系统存在一名可登录的初始管理员
// 新注册的管理员处于 pending 且邮箱未验证，没有初始管理员就无人能执行首次审批；
// 仅在配置了 auth.bootstrap_password 且对应学工号不存在时写入，重复调用为空操作
func EnsureBootstrapManager(ctx context.Context, repo *repository.Repository, hasher *password.Hasher, cfg *config.AuthConfig, logger *zap.Logger) error {
	if cfg.BootstrapPassword == "" {
		return nil
	}

	if _, err := repo.Member.GetByGroupID(ctx, cfg.BootstrapGroupID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.BootstrapPassword)
	if err != nil {
		return err
	}

	member := &model.Member{
		Name:           cfg.BootstrapName,
		PasswordHash:   hash,
		Email:          cfg.BootstrapEmail,
		GroupID:        cfg.BootstrapGroupID,
		Sex:            model.SexMale,
		MemberRole:     model.RoleManager,
		Approved:       model.ApprovalApprove,
		ApprovedReason: "初始管理员",
		EmailConfirmed: true,
	}
	if err := repo.Member.Create(ctx, member); err != nil {
		return err
	}

	logger.Info("已创建初始管理员",
		zap.Int64("member_id", member.ID),
		zap.String("group_id", member.GroupID))
	return nil
}
