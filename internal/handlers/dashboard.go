package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Dashboard roles served under /api/{role}.
var DashboardRoles = []string{"customer", "paralegal", "lawyer", "admin"}

var dashboardMessages = map[string]string{
	"customer":  "Customer dashboard data",
	"paralegal": "Paralegal dashboard data",
	"lawyer":    "Lawyer dashboard data",
	"admin":     "Admin dashboard data",
}

// Dashboard returns the placeholder payload for a role dashboard.
func Dashboard(role string) gin.HandlerFunc {
	message, ok := dashboardMessages[role]
	if !ok {
		message = "Dashboard data"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}
