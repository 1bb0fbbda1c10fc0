package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kin-platform/kin-backend/internal/app/controllers"
	"github.com/kin-platform/kin-backend/internal/app/models"
	"github.com/kin-platform/kin-backend/internal/metrics"
	"github.com/kin-platform/kin-backend/internal/middleware"
)

// Controllers bundles all controller instances for route registration
type Controllers struct {
	Auth      *controllers.AuthController
	User      *controllers.UserController
	Committee *controllers.CommitteeController
	Advisor   *controllers.AdvisorController
	Post      *controllers.PostController
}

// SetupRouter wires every endpoint onto a gin engine
func SetupRouter(ctrl *Controllers, authMW *middleware.AuthMiddleware, registry *metrics.Registry, storagePath string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics(registry))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stored uploads (profile photos, advisor photos, post images)
	router.Static("/uploads", storagePath)

	api := router.Group("/api/v1")

	adminOnly := []gin.HandlerFunc{
		authMW.RequireAuth(),
		authMW.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin),
	}
	superAdminOnly := []gin.HandlerFunc{
		authMW.RequireAuth(),
		authMW.RequireRoles(models.RoleSuperAdmin),
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authMW.RequireGuest(), ctrl.Auth.Register)
		auth.POST("/activate", authMW.RequireGuest(), ctrl.Auth.Activate)
		auth.POST("/resend-active-code", authMW.RequireGuest(), ctrl.Auth.ResendActivationCode)
		auth.POST("/login", authMW.RequireGuest(), ctrl.Auth.Login)
		auth.POST("/dashboard-login", authMW.RequireGuest(), ctrl.Auth.DashboardLogin)
		auth.POST("/find-account", authMW.RequireGuest(), ctrl.Auth.FindAccount)
		auth.POST("/logout", authMW.RequireAuth(), ctrl.Auth.Logout)
		auth.GET("/me", authMW.RequireAuth(), ctrl.Auth.Me)
	}

	users := api.Group("/users")
	{
		users.GET("", append(adminOnly, ctrl.User.ListUsers)...)
		users.POST("", append(adminOnly, ctrl.User.AddUser)...)
		users.POST("/bulk-create", append(superAdminOnly, ctrl.User.BulkCreateUsers)...)
		users.DELETE("/bulk-delete", append(superAdminOnly, ctrl.User.BulkDeleteUsers)...)
		users.GET("/counts", append(adminOnly, ctrl.User.GetCounts)...)
		users.PATCH("/password-update", authMW.RequireAuth(), ctrl.User.UpdatePassword)

		users.POST("/forgot-password", authMW.RequireGuest(), ctrl.Auth.ForgotPassword)
		users.POST("/reset-password", authMW.RequireGuest(), ctrl.Auth.ResetPassword)
		users.POST("/resend-password-reset-code", authMW.RequireGuest(), ctrl.Auth.ResendResetCode)

		users.PATCH("/ban/:id", append(adminOnly, ctrl.User.BanUser)...)
		users.PATCH("/unban/:id", append(adminOnly, ctrl.User.UnbanUser)...)
		users.PATCH("/role-update/:id", append(superAdminOnly, ctrl.User.UpdateRole)...)

		users.GET("/:id", authMW.RequireAuth(), ctrl.User.GetUser)
		users.PATCH("/:id", authMW.RequireAuth(), ctrl.User.UpdateUser)
		users.DELETE("/:id", authMW.RequireAuth(), ctrl.User.DeleteUser)
	}

	ec := api.Group("/ec")
	{
		ec.GET("", ctrl.Committee.ListCommittees)
		ec.POST("", append(adminOnly, ctrl.Committee.CreateCommittee)...)
		ec.POST("/member-add-in-ec", append(adminOnly, ctrl.Committee.AddMember)...)
		ec.PATCH("/update-member/:id", append(adminOnly, ctrl.Committee.UpdateMember)...)
		ec.DELETE("/remove-member/:id", append(adminOnly, ctrl.Committee.RemoveMember)...)
		ec.GET("/:id", ctrl.Committee.GetCommittee)
		ec.PATCH("/:id", append(adminOnly, ctrl.Committee.UpdateCommittee)...)
		ec.DELETE("/:id", append(adminOnly, ctrl.Committee.DeleteCommittee)...)
	}

	advisors := api.Group("/advisors")
	{
		advisors.GET("", ctrl.Advisor.ListAdvisors)
		advisors.POST("", append(adminOnly, ctrl.Advisor.CreateAdvisor)...)
		advisors.POST("/bulk-create", append(adminOnly, ctrl.Advisor.BulkCreateAdvisors)...)
		advisors.DELETE("/bulk-delete", append(adminOnly, ctrl.Advisor.BulkDeleteAdvisors)...)
		advisors.GET("/:id", append(adminOnly, ctrl.Advisor.GetAdvisor)...)
		advisors.PATCH("/:id", append(adminOnly, ctrl.Advisor.UpdateAdvisor)...)
		advisors.DELETE("/:id", append(adminOnly, ctrl.Advisor.DeleteAdvisor)...)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", ctrl.Post.ListPosts)
		posts.POST("", append(adminOnly, ctrl.Post.CreatePost)...)
		posts.POST("/comment-on-post", ctrl.Post.CommentOnPost)
		posts.DELETE("/delete-comment/:id", append(adminOnly, ctrl.Post.DeleteComment)...)
		posts.PATCH("/:id", append(adminOnly, ctrl.Post.UpdatePost)...)
		posts.GET("/:slug", ctrl.Post.GetPostBySlug)
		posts.DELETE("/:slug", append(adminOnly, ctrl.Post.DeletePostBySlug)...)
	}

	return router
}
