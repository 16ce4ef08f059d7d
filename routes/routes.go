package routes

import (
	"delivery-backend/configs"
	"delivery-backend/controllers"
	"delivery-backend/entity"
	"delivery-backend/middlewares"
	"delivery-backend/repository"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, tokens services.TokenStore) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, tokens, cfg.JWTSecret, cfg.JWTTTL)
	accountSvc := services.NewAccountService(userRepo, tokens)
	catalogSvc := services.NewCatalogService(db, catalogRepo)
	orderSvc := services.NewOrderService(db, orderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	userCtrl := controllers.NewUserController(accountSvc)
	catalogCtrl := controllers.NewCatalogController(catalogRepo, catalogSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.Auth(cfg.JWTSecret, tokens, roles...)
	}

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth())
	{
		aAuth.POST("/logout", authCtrl.Logout)
		aAuth.POST("/logout-all", authCtrl.LogoutAll)
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// User management (manager เท่านั้น, ห้ามยุ่งกับตัวเอง)
	users := r.Group("/users", auth(entity.RoleManager))
	{
		users.GET("", userCtrl.List)
		users.POST("", userCtrl.Create)
		users.GET("/:id", userCtrl.Detail)
		users.PATCH("/:id", userCtrl.Update)
		users.DELETE("/:id", userCtrl.Delete)
	}

	// Catalog — อ่าน public เขียนเฉพาะ manager
	r.GET("/categories", catalogCtrl.ListCategories)
	r.GET("/categories/:id", catalogCtrl.CategoryDetail)
	r.GET("/ingredients", catalogCtrl.ListIngredients)
	r.GET("/ingredients/:id", catalogCtrl.IngredientDetail)
	r.GET("/dishes", catalogCtrl.ListDishes)
	r.GET("/dishes/:id", catalogCtrl.DishDetail)

	manage := r.Group("/", auth(entity.RoleManager))
	{
		manage.POST("/categories", catalogCtrl.CreateCategory)
		manage.PATCH("/categories/:id", catalogCtrl.UpdateCategory)
		manage.DELETE("/categories/:id", catalogCtrl.DeleteCategory)
		manage.POST("/ingredients", catalogCtrl.CreateIngredient)
		manage.PATCH("/ingredients/:id", catalogCtrl.UpdateIngredient)
		manage.DELETE("/ingredients/:id", catalogCtrl.DeleteIngredient)
		manage.POST("/dishes", catalogCtrl.CreateDish)
		manage.PATCH("/dishes/:id", catalogCtrl.UpdateDish)
		manage.DELETE("/dishes/:id", catalogCtrl.DeleteDish)
	}

	// Orders — guest สั่งและตามสถานะได้ เลยใช้ OptionalAuth
	optional := middlewares.OptionalAuth(cfg.JWTSecret, tokens)
	orders := r.Group("/orders")
	{
		orders.POST("", optional, orderCtrl.Create)
		orders.GET("", optional, orderCtrl.List)
		orders.GET("/:id", optional, orderCtrl.Detail)

		// total เป็น immutable หลังสร้าง → 405 ตรง ๆ
		orders.PATCH("/:id", orderCtrl.NotAllowed)
		orders.PUT("/:id", orderCtrl.NotAllowed)
		orders.DELETE("/:id", orderCtrl.NotAllowed)

		// state machine สำหรับ staff
		orders.POST("/:id/status",
			auth(entity.RoleManager, entity.RoleKitchen, entity.RoleCourier),
			orderCtrl.AdvanceStatus)
	}
}
