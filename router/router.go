package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/okapine/tablebook/controllers"
	"github.com/okapine/tablebook/middlewares"
	"github.com/okapine/tablebook/realtime"
	"github.com/okapine/tablebook/services"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	availabilitySvc := services.NewAvailabilityService(db)
	reservationSvc := services.NewReservationService(db)
	orderSvc := services.NewOrderService(db, hub)
	tableSvc := services.NewTableService(db)

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(tableSvc)
	reservationCtrl := controllers.NewReservationController(reservationSvc, availabilitySvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	wsCtrl := controllers.NewWSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	v1 := r.Group("/api/v1")

	// Public routes.
	v1.POST("/auth/register", userCtrl.Register)
	v1.POST("/auth/login", userCtrl.Login)
	v1.GET("/reservations/availability", reservationCtrl.CheckAvailability)
	v1.GET("/menu", menuCtrl.List)
	v1.GET("/menu/:menu_item_id", menuCtrl.Get)

	// Authenticated customer routes.
	auth := v1.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/auth/profile", userCtrl.GetProfile)

		auth.GET("/reservations", reservationCtrl.ListMine)
		auth.POST("/reservations", reservationCtrl.Create)
		auth.GET("/reservations/:reservation_id", reservationCtrl.Get)
		auth.PUT("/reservations/:reservation_id", reservationCtrl.Update)
		auth.DELETE("/reservations/:reservation_id", reservationCtrl.Cancel)
	}

	// Staff routes.
	staff := v1.Group("/")
	staff.Use(middlewares.AuthMiddleware(), middlewares.RequireStaff())
	{
		staff.GET("/admin/reservations", reservationCtrl.ListAll)
		staff.PUT("/admin/reservations/:reservation_id/table", reservationCtrl.AssignTable)
		staff.PATCH("/admin/reservations/:reservation_id/status", reservationCtrl.UpdateStatus)

		staff.GET("/tables", tableCtrl.List)
		staff.GET("/tables/:table_id", tableCtrl.Get)
		staff.POST("/tables", tableCtrl.Create)
		staff.PUT("/tables/:table_id", tableCtrl.Update)
		staff.DELETE("/tables/:table_id", tableCtrl.Delete)

		staff.GET("/orders", orderCtrl.List)
		staff.POST("/orders", orderCtrl.Create)
		staff.GET("/orders/:order_id", orderCtrl.Get)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateStatus)

		staff.POST("/menu", menuCtrl.Create)
		staff.PATCH("/menu/:menu_item_id", menuCtrl.Update)
	}

	// Real-time viewers (kitchen display, admin panel).
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", wsCtrl.Handle)
	}

	return r
}
