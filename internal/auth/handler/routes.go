package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/register", h.Register)
	app.Post("/api/v1/login", h.Login)
	app.Post("/api/v1/verify-email", h.VerifyEmail)
	app.Post("/api/v1/logout", h.Logout)

	app.Get("/api/v1/me", h.RequireSession(), h.Me)
}
