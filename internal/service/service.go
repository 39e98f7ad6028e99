package service

import (
	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/internal/repository"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/password"
	"github.com/2023-Capston-Design/Backend-RE/pkg/redis"
)

// Service 所有业务服务的聚合入口
type Service struct {
	Member     MemberService
	Auth       AuthService
	Department DepartmentService
	Profile    ProfileService
	Export     ExportService
}

// NewService 创建服务聚合
func NewService(repo *repository.Repository, hasher *password.Hasher, jwtManager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		Member:     NewMemberService(repo, hasher, logger),
		Auth:       NewAuthService(repo, hasher, jwtManager, redisClient, logger),
		Department: NewDepartmentService(repo, logger),
		Profile:    NewProfileService(repo),
		Export:     NewExportService(repo, logger),
	}
}
