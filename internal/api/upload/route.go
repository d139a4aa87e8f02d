package upload

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router) {
	r.Post("/upload", HandleUpload)
	r.Get("/documents/:docID/url", HandleDownloadURL)
}
