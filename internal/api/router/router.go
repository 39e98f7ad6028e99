package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2023-Capston-Design/Backend-RE/internal/api/handler"
	"github.com/2023-Capston-Design/Backend-RE/internal/api/middleware"
	"github.com/2023-Capston-Design/Backend-RE/internal/model"
	"github.com/2023-Capston-Design/Backend-RE/pkg/jwt"
	"github.com/2023-Capston-Design/Backend-RE/pkg/redis"
)

// Setup 组装全部路由
func Setup(h *handler.Handler, jwtManager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuth(jwtManager, redisClient)
	managerOnly := middleware.RoleAuth(string(model.RoleManager))

	v1 := r.Group("/api/v1")
	{
		// ── 认证 ──
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.RefreshToken)
			authGroup.POST("/logout", auth, h.Auth.Logout)
			authGroup.GET("/me", auth, h.Auth.Me)
		}

		// ── 成员 ──
		members := v1.Group("/members")
		{
			// 注册与注册前检查无需登录
			members.POST("", h.Member.Create)
			members.GET("/check/:type/:value", h.Member.CheckValueIsAvailable)

			members.GET("", auth, managerOnly, h.Member.List)
			members.GET("/export", auth, managerOnly, h.Export.ExportMemberRoster)
			members.GET("/gid/:gid", auth, h.Member.GetByGroupID)
			members.GET("/:id", auth, h.Member.GetByID)

			// 自助修改/注销，以原密码自证身份
			members.PATCH("", auth, h.Member.Update)
			members.DELETE("", auth, h.Member.Delete)

			// 审批与邮箱验证由管理员操作
			members.GET("/:id/approval", auth, managerOnly, h.Member.GetApproval)
			members.PATCH("/approval", auth, managerOnly, h.Member.SetApproval)
			members.PATCH("/:id/email-confirmation", auth, managerOnly, h.Member.ConfirmEmail)
		}

		// ── 学生视角 ──
		students := v1.Group("/students", auth)
		{
			students.GET("/gid/:gid", h.Profile.GetStudentByGroupID)
			students.GET("/:id", h.Profile.GetStudentByID)
			students.GET("/:id/active", h.Profile.ValidateActiveStudent)
		}

		// ── 教师视角 ──
		instructors := v1.Group("/instructors", auth)
		{
			instructors.GET("/gid/:gid", h.Profile.GetInstructorByGroupID)
			instructors.GET("/:id", h.Profile.GetInstructorByID)
			instructors.GET("/:id/active", h.Profile.ValidateActiveInstructor)
		}

		// ── 学部 ──
		departments := v1.Group("/departments")
		{
			departments.GET("", auth, h.Department.List)
			departments.GET("/:id", auth, h.Department.GetByID)
			departments.GET("/:id/detail", auth, h.Department.GetDetail)

			departments.POST("", auth, managerOnly, h.Department.Create)
			departments.PATCH("/:id", auth, managerOnly, h.Department.Update)
			departments.DELETE("/:id", auth, managerOnly, h.Department.Delete)
		}
	}

	return r
}
