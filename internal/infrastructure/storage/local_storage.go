// Package storage implementa ports.FileStore sobre un directorio local plano.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Garantias-api/internal/application/ports"
)

var _ ports.FileStore = (*LocalStorage)(nil)

// LocalStorage guarda archivos en Dir y los publica bajo Prefix (ej. /uploads).
type LocalStorage struct {
	dir    string
	prefix string
}

// NewLocalStorage crea el directorio si no existe.
func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("ruta de uploads: %w", err)
	}
	prefix := "/" + strings.Trim(publicPrefix, "/")
	return &LocalStorage{dir: abs, prefix: prefix}, nil
}

// Dir directorio absoluto del almacén.
func (s *LocalStorage) Dir() string { return s.dir }

// Save nombre único: uuid en hex (32 caracteres) + extensión original en minúsculas.
func (s *LocalStorage) Save(ctx context.Context, up ports.Upload) (string, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + extension(up.Filename)
	return s.write(ctx, name, up.Content)
}

// SaveAs borra cualquier base.* previo y guarda como base + extensión.
func (s *LocalStorage) SaveAs(ctx context.Context, base string, up ports.Upload) (string, error) {
	if base == "" || strings.ContainsAny(base, `/\`) {
		return "", fmt.Errorf("nombre base inválido %q", base)
	}
	previous, err := filepath.Glob(filepath.Join(s.dir, base+".*"))
	if err != nil {
		return "", err
	}
	name := base + extension(up.Filename)
	for _, p := range previous {
		if filepath.Base(p) == name {
			continue // se sobrescribe abajo
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("borrar %s: %w", filepath.Base(p), err)
		}
	}
	return s.write(ctx, name, up.Content)
}

func (s *LocalStorage) write(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r == nil {
		return "", errors.New("archivo vacío")
	}
	// Se escribe a un temporal y se renombra para no dejar archivos a medias.
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("cerrar %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("guardar %s: %w", name, err)
	}
	return s.prefix + "/" + name, nil
}

// List nombres de archivos regulares (sin subdirectorios ni temporales).
func (s *LocalStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("leer uploads: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Remove borra name dentro del directorio. Ya ausente no es error.
func (s *LocalStorage) Remove(_ context.Context, name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("nombre inválido %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Resolve "/uploads/abc.png" -> "<dir>/abc.png".
func (s *LocalStorage) Resolve(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, s.prefix+"/") {
		return "", false
	}
	name := path.Base(publicPath)
	if name == "." || name == "/" || name == ".." {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		return ""
	}
	return ext
}
