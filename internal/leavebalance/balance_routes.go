package leavebalance

import (
	"github.com/gin-gonic/gin"

	"go-leavehub/internal/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbac middleware.RBACService) {
	balances := rg.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/employee/:employeeId", middleware.RBACAuthorize(rbac, "leave_balance", "read"), handler.GetByEmployee)
		balances.POST("/populate", middleware.RBACAuthorize(rbac, "leave_balance", "populate"), handler.Populate)
		balances.POST("/populate/async", middleware.RBACAuthorize(rbac, "leave_balance", "populate"), handler.PopulateAsync)
	}
}
