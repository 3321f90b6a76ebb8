package testutil

import (
	"bytes"
	"context"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Garantias-api/internal/application/ports"
	"github.com/jhoicas/Garantias-api/internal/application/warranty"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
)

// SeedUser crea un usuario con password (bcrypt de costo mínimo) y lo devuelve.
func SeedUser(t testing.TB, s *Store, username, role, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &entity.User{Username: username, PasswordHash: string(hash), Role: role, CreatedAt: time.Now()}
	if err := s.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// Files almacén de archivos en memoria con la convención pública /uploads/<nombre>.
type Files struct {
	mu    sync.Mutex
	data  map[string][]byte
	Fails error // si no es nil, Save y SaveAs fallan con este error
}

// NewFiles crea un almacén vacío.
func NewFiles() *Files { return &Files{data: map[string][]byte{}} }

var _ ports.FileStore = (*Files)(nil)

func (f *Files) Save(_ context.Context, up ports.Upload) (string, error) {
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ToLower(filepath.Ext(up.Filename))
	return f.put(name, up.Content)
}

func (f *Files) SaveAs(_ context.Context, base string, up ports.Upload) (string, error) {
	f.mu.Lock()
	for name := range f.data {
		if strings.TrimSuffix(name, path.Ext(name)) == base {
			delete(f.data, name)
		}
	}
	f.mu.Unlock()
	return f.put(base+strings.ToLower(filepath.Ext(up.Filename)), up.Content)
}

func (f *Files) put(name string, r io.Reader) (string, error) {
	if f.Fails != nil {
		return "", f.Fails
	}
	var buf bytes.Buffer
	if r != nil {
		if _, err := io.Copy(&buf, r); err != nil {
			return "", err
		}
	}
	f.mu.Lock()
	f.data[name] = buf.Bytes()
	f.mu.Unlock()
	return "/uploads/" + name, nil
}

// Put agrega un archivo directamente (para preparar escenarios).
func (f *Files) Put(name string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[name] = content
}

func (f *Files) List(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.data))
	for name := range f.data {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (f *Files) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, name)
	return nil
}

func (f *Files) Resolve(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, "/uploads/") {
		return "", false
	}
	return "mem/" + path.Base(publicPath), true
}

// Names nombres guardados, ordenados.
func (f *Files) Names() []string {
	names, _ := f.List(context.Background())
	return names
}

// Notifier registra los avisos recibidos y responde con Err.
type Notifier struct {
	mu      sync.Mutex
	Err     error
	Notices []warranty.CreatedNotice
}

func (n *Notifier) NotifyCreated(_ context.Context, notice warranty.CreatedNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
	return n.Err
}
