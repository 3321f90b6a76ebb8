// Package testutil implementaciones en memoria de los puertos, para pruebas de
// casos de uso y de handlers sin base de datos.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Garantias-api/internal/domain"
	"github.com/jhoicas/Garantias-api/internal/domain/entity"
	"github.com/jhoicas/Garantias-api/internal/domain/repository"
)

// Store base de datos en memoria. Borrar garantías borra sus comentarios.
type Store struct {
	mu         sync.Mutex
	users      map[int64]*entity.User
	warranties map[int64]*entity.Warranty
	comments   map[int64]*entity.Comment
	company    *entity.CompanyConfig
	seq        int64
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		users:      map[int64]*entity.User{},
		warranties: map[int64]*entity.Warranty{},
		comments:   map[int64]*entity.Comment{},
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

// Warranties repositorio de garantías.
func (s *Store) Warranties() repository.WarrantyRepository { return warrantyRepo{s} }

// Comments repositorio de comentarios.
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

// Company repositorio de configuración.
func (s *Store) Company() repository.CompanyConfigRepository { return companyRepo{s} }

// RunReset ejecuta fn; si falla restaura el estado previo (rollback).
func (s *Store) RunReset(ctx context.Context, fn func(repository.WarrantyRepository, repository.CommentRepository) error) error {
	s.mu.Lock()
	wSnap := make(map[int64]*entity.Warranty, len(s.warranties))
	for k, v := range s.warranties {
		wSnap[k] = v
	}
	cSnap := make(map[int64]*entity.Comment, len(s.comments))
	for k, v := range s.comments {
		cSnap[k] = v
	}
	s.mu.Unlock()

	if err := fn(s.Warranties(), s.Comments()); err != nil {
		s.mu.Lock()
		s.warranties, s.comments = wSnap, cSnap
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── usuarios ─────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if e.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	u.ID = r.s.next()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, e := range r.s.users {
		if e.ID != u.ID && e.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

// ── garantías ────────────────────────────────────────────────────────────────

type warrantyRepo struct{ s *Store }

func (r warrantyRepo) Create(_ context.Context, w *entity.Warranty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = r.s.next()
	cp := *w
	r.s.warranties[w.ID] = &cp
	return nil
}

func (r warrantyRepo) GetByID(_ context.Context, id int64) (*entity.Warranty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.warranties[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r warrantyRepo) List(_ context.Context, f repository.WarrantyFilter) ([]*entity.Warranty, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	search := strings.ToLower(f.Search)
	out := make([]*entity.Warranty, 0, len(r.s.warranties))
	for _, w := range r.s.warranties {
		if f.Status != "" && string(w.Status) != f.Status {
			continue
		}
		if f.AssignedUser != "" && w.AssignedUser != f.AssignedUser {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(w.ClientName), search) &&
			!strings.Contains(strings.ToLower(w.IDDocument), search) &&
			!strings.Contains(strings.ToLower(w.Serial), search) {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r warrantyRepo) Update(_ context.Context, w *entity.Warranty) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warranties[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.s.warranties[w.ID] = &cp
	return nil
}

func (r warrantyRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.warranties), nil
}

func (r warrantyRepo) DeleteAll(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.warranties)
	r.s.warranties = map[int64]*entity.Warranty{}
	r.s.comments = map[int64]*entity.Comment{}
	return n, nil
}

// ── comentarios ──────────────────────────────────────────────────────────────

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warranties[c.WarrantyID]; !ok {
		return domain.ErrNotFound
	}
	c.ID = r.s.next()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r commentRepo) ListByWarranty(_ context.Context, warrantyID int64) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Comment, 0)
	for _, c := range r.s.comments {
		if c.WarrantyID == warrantyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r commentRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.comments), nil
}

// ── configuración ────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r companyRepo) Get(_ context.Context) (*entity.CompanyConfig, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.company == nil {
		return nil, nil
	}
	cp := *r.s.company
	return &cp, nil
}

func (r companyRepo) Save(_ context.Context, cfg *entity.CompanyConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cfg.ID == 0 {
		cfg.ID = 1
	}
	cp := *cfg
	r.s.company = &cp
	return nil
}
