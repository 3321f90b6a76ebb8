package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/domain"
)

// formUpload abre el archivo del campo multipart field. Sin archivo devuelve (nil, nil, nil).
// El llamador cierra con la función devuelta.
func formUpload(c *fiber.Ctx, field string) (*ports.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Filename == "" || fh.Size == 0 {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: no se pudo leer %s", domain.ErrInvalidInput, field)
	}
	return &ports.Upload{Filename: fh.Filename, Content: f}, func() { _ = f.Close() }, nil
}
