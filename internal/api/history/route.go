package history

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/history", HandleList)
	r.Get("/history/:id", HandleGet)
	r.Delete("/history/:id", HandleDelete)
}
