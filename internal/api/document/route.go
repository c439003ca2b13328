package document

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/documents", HandleList)
	r.Delete("/documents/:docID", HandleDelete)
}
