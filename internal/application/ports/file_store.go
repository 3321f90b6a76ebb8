package ports

import (
	"context"
	"io"
)

// Upload archivo recibido desde un formulario multipart.
// Del nombre original solo se conserva la extensión.
type Upload struct {
	Filename string
	Content  io.Reader
}

// FileStore define el puerto de salida para los archivos subidos (evidencias,
// adjuntos de comentarios y logo). Todos viven en un único directorio plano.
type FileStore interface {
	// Save guarda up con un nombre único (uuid + extensión) y devuelve la ruta pública.
	Save(ctx context.Context, up Upload) (string, error)
	// SaveAs guarda up con el nombre base indicado (más la extensión del original),
	// reemplazando cualquier archivo previo con ese nombre base.
	SaveAs(ctx context.Context, base string, up Upload) (string, error)
	// List devuelve los nombres de los archivos regulares del directorio.
	List(ctx context.Context) ([]string, error)
	// Remove borra el archivo name. No falla si ya no existe.
	Remove(ctx context.Context, name string) error
	// Resolve traduce una ruta pública a la ruta en disco. ok=false si no pertenece al almacén.
	Resolve(publicPath string) (localPath string, ok bool)
}
