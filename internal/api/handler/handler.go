package handler

import (
	"github.com/2023-Capston-Design/Backend-RE/internal/service"
)

// Handler 所有 HTTP Handler 的聚合入口
type Handler struct {
	Member     *MemberHandler
	Auth       *AuthHandler
	Department *DepartmentHandler
	Profile    *ProfileHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Member:     NewMemberHandler(svc.Member),
		Auth:       NewAuthHandler(svc.Auth),
		Department: NewDepartmentHandler(svc.Department),
		Profile:    NewProfileHandler(svc.Profile, svc.Member),
		Export:     NewExportHandler(svc.Export),
	}
}
