package leavescheme

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	schemes := r.Group("/leave-schemes")
	schemes.Use(middleware.AuthMiddleware())
	{
		schemes.GET("", middleware.RBACAuthorize(rbacService, "leave_scheme", "read"), handler.GetAll)
		schemes.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_scheme", "read"), handler.GetById)
		schemes.POST("", middleware.RBACAuthorize(rbacService, "leave_scheme", "create"), handler.Create)
		schemes.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_scheme", "update"), handler.Update)
		schemes.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_scheme", "delete"), handler.Delete)

		schemes.POST("/:id/leave-types", middleware.RBACAuthorize(rbacService, "leave_scheme", "update"), handler.AddLeaveType)
		schemes.PUT("/:id/leave-types/:leaveTypeId", middleware.RBACAuthorize(rbacService, "leave_scheme", "update"), handler.UpdateLeaveType)
		schemes.DELETE("/:id/leave-types/:leaveTypeId", middleware.RBACAuthorize(rbacService, "leave_scheme", "update"), handler.RemoveLeaveType)
	}
}
