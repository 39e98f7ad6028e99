package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2023-Capston-Design/Backend-RE/internal/dto"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
	"github.com/2023-Capston-Design/Backend-RE/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("学工号或密码错误")
	ErrInvalidTokenType   = errors.New("token 类型不正确")
	ErrTokenRevoked       = errors.New("token 已被注销")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	GetCurrentMember(ctx context.Context, memberID int64) (*dto.MemberResponse, error)
}

// redisClient 允许为 nil（降级运行），此时登出黑名单不生效
type authService struct {
	repo       *repository.Repository
	hasher     *password.Hasher
	jwtManager *jwt.Manager
	redis      *redis.Client
	logger     *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, hasher *password.Hasher, jwtManager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		hasher:     hasher,
		jwtManager: jwtManager,
		redis:      redisClient,
		logger:     logger,
	}
}

// Login 以学工号 + 密码登录
// 存在性与密码错误统一返回 ErrInvalidCredentials，避免泄露账号是否存在
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := s.repo.Member.GetByGroupID(ctx, req.GroupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, member.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if member.Approved != model.ApprovalApprove {
		return nil, ErrInvalidMemberApproval
	}
	if !member.EmailConfirmed {
		return nil, ErrEmailYetConfirmed
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(member.ID, string(member.MemberRole))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(member.ID, string(member.MemberRole))
	if err != nil {
		return nil, err
	}

	s.logger.Info("成员登录成功",
		zap.Int64("member_id", member.ID),
		zap.String("group_id", member.GroupID))

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       dto.ToMemberResponse(member),
	}, nil
}

// RefreshToken 以 Refresh Token 换取新的令牌对，旧 Refresh Token 作废
func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := s.jwtManager.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidTokenType
	}

	if s.redis != nil {
		revoked, err := s.redis.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	member, err := s.repo.Member.GetByID(ctx, claims.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(member.ID, string(member.MemberRole))
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(member.ID, string(member.MemberRole))
	if err != nil {
		return nil, err
	}

	if s.redis != nil && claims.ExpiresAt != nil {
		if err := s.redis.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("旧 Refresh Token 加入黑名单失败", zap.Error(err))
		}
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout 注销当前令牌（剩余有效期内加入黑名单）
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.redis == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.redis.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		return err
	}
	s.logger.Info("成员已登出", zap.Int64("member_id", claims.MemberID))
	return nil
}

// GetCurrentMember 查询当前登录成员
func (s *authService) GetCurrentMember(ctx context.Context, memberID int64) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return dto.ToMemberResponse(member), nil
}
