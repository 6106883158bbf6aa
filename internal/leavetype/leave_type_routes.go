package leavetype

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "read"), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, "leave_type", "create"), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "update"), handler.Update)
		types.PATCH("/:id/deactivate", middleware.RBACAuthorize(rbacService, "leave_type", "update"), handler.Deactivate)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "leave_type", "delete"), handler.Delete)
	}
}
