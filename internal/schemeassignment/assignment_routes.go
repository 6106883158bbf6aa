package schemeassignment

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	assignments := r.Group("/scheme-assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.POST("", middleware.RBACAuthorize(rbacService, "scheme_assignment", "create"), handler.Create)
		assignments.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "scheme_assignment", "read"), handler.ListByEmployee)
		assignments.GET("/employee/:employeeId/current", middleware.RBACAuthorize(rbacService, "scheme_assignment", "read"), handler.GetCurrent)
		assignments.PUT("/:id", middleware.RBACAuthorize(rbacService, "scheme_assignment", "update"), handler.Update)
		assignments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "scheme_assignment", "delete"), handler.Delete)
	}
}
