package leaveapplication

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbac middleware.RBACService, idempotency gin.HandlerFunc) {
	applications := rg.Group("/leave-applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.POST("", middleware.RBACAuthorize(rbac, "leave_application", "create"), idempotency, handler.Create)
		applications.GET("", middleware.RBACAuthorize(rbac, "leave_application", "read"), handler.GetAll)
		applications.GET("/:id", middleware.RBACAuthorize(rbac, "leave_application", "read"), handler.GetById)
		applications.PUT("/:id", middleware.RBACAuthorize(rbac, "leave_application", "update"), handler.Update)
		applications.PATCH("/:id/status", middleware.RBACAuthorize(rbac, "leave_application", "approve"), handler.UpdateStatus)
		applications.PATCH("/:id/cancel", middleware.RBACAuthorize(rbac, "leave_application", "cancel"), handler.Cancel)
		applications.DELETE("/:id", middleware.RBACAuthorize(rbac, "leave_application", "delete"), handler.Delete)
	}
}
