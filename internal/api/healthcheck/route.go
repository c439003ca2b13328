package healthcheck

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Get("/health", ApiHealthCheck)
	r.Get("/health/db", DatabaseHealthCheck)
	r.Get("/health/milvus", MilvusHealthCheck)
}
