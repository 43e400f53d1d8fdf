// Package routes wires the REST surface. Role requirements are enforced
// canonically inside the services; the rbac guards here reject obviously
// wrong callers at the edge. Both layers use the same role constants.
package routes

import (
	"time"

	"github.com/smartbytes/canteen/app/controllers"
	"github.com/smartbytes/canteen/app/models"
	"github.com/smartbytes/canteen/pkg/metrics"
	"github.com/smartbytes/canteen/pkg/middleware"
	"github.com/smartbytes/canteen/pkg/rbac"
	"github.com/smartbytes/canteen/pkg/router"
)

func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	foodController := controllers.NewFoodController()
	orderController := controllers.NewOrderController()
	paymentController := controllers.NewPaymentController()
	userController := controllers.NewUserController()

	r.Get("/metrics", "metrics", metrics.Handler())

	api := r.Group("/api")

	auth := api.Group("/auth", middleware.RateLimit(20, time.Minute))
	auth.Post("/register", "auth.register", authController.Register)
	auth.Post("/login", "auth.login", authController.Login)

	protected := api.Group("", middleware.Auth)

	food := protected.Group("/food")
	food.Get("/available", "food.available", foodController.Available)
	food.Get("/donations", "food.donations", foodController.Donations)
	food.Get("/{id}", "food.show", foodController.Show)
	food.Get("", "food.index", foodController.Index)
	food.Post("", "food.create", foodController.Create)
	food.Put("/{id}", "food.update", foodController.Update)
	food.Delete("/{id}", "food.delete", foodController.Delete)
	food.Put("/{id}/availability", "food.availability", foodController.SetAvailability)
	food.Post("/{id}/donate", "food.donate", foodController.Donate)
	food.Post("/{id}/receive", "food.receive", foodController.MarkReceived)
	food.Put("/{id}/photo", "food.photo", foodController.UploadPhoto)

	orders := protected.Group("/orders")
	orders.Post("", "orders.place", orderController.Place)
	orders.Get("/my", "orders.my", orderController.My)
	orders.Get("/my/{id}", "orders.my.show", orderController.MyShow)
	orders.Post("/{id}/cancel", "orders.cancel", orderController.Cancel)
	orders.Get("", "orders.index", orderController.Index)
	orders.Get("/{id}", "orders.show", orderController.Show)
	orders.Put("/{id}/status", "orders.status", orderController.UpdateStatus)

	payments := protected.Group("/payments")
	payments.Post("", "payments.process", paymentController.Process)
	payments.Get("/my", "payments.my", paymentController.My)
	payments.Get("/my/{id}", "payments.my.show", paymentController.MyShow)
	payments.Get("", "payments.index", paymentController.Index)
	payments.Get("/{id}", "payments.show", paymentController.Show)
	payments.Put("/{id}/status", "payments.status", paymentController.UpdateStatus)

	users := protected.Group("/users", rbac.HasRole(string(models.RoleAdmin)))
	users.Get("", "users.index", userController.Index)
	users.Get("/{id}", "users.show", userController.Show)
	users.Put("/{id}/role", "users.role", userController.UpdateRole)
	users.Delete("/{id}", "users.delete", userController.Delete)
}
