package userRoutes

import (
	userController "exim/controllers/userControllers"
	"exim/middleware"
	userValidator "exim/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userController.GetProfile)
	userGroup.Put("/business/profile", middleware.JWTMiddleware, userValidator.UpdateBusinessProfile(), userController.UpdateBusinessProfile)
	userGroup.Post("/upload/document", middleware.JWTMiddleware, userController.UploadProfileDocument)
	userGroup.Post("/add/bank/account", middleware.JWTMiddleware, userValidator.AddBankAccount(), userController.AddBankAccount)
	userGroup.Get("/bank/list", middleware.JWTMiddleware, userController.BankList)
}
