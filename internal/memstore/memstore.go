// Package memstore implements the repository contracts in process memory. It
// backs `serve --in-memory` and the HTTP tests; nothing survives a restart.
package memstore

import (
	"errors"
	"sort"
	"sync"
	"time"

	"tokobagus/internal/models"
	"tokobagus/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var ErrDuplicate = errors.New("duplicate entry")

type Store struct {
	Products   *Products
	Categories *Categories
	Settings   *Settings
	Messages   *Messages
	Users      *Users
}

func New() *Store {
	return &Store{
		Products:   &Products{rows: map[uint]models.Product{}},
		Categories: &Categories{rows: map[uint]models.Category{}},
		Settings:   &Settings{},
		Messages:   &Messages{rows: map[uint]models.Message{}},
		Users:      &Users{rows: map[string]models.User{}},
	}
}

func (s *Store) Stats(lowStockThreshold int) (*repository.DashboardStats, error) {
	st := &repository.DashboardStats{}
	s.Products.mu.Lock()
	st.TotalProducts = int64(len(s.Products.rows))
	for _, p := range s.Products.rows {
		if p.Stock < lowStockThreshold {
			st.LowStockProducts++
		}
	}
	s.Products.mu.Unlock()
	s.Categories.mu.Lock()
	st.TotalCategories = int64(len(s.Categories.rows))
	s.Categories.mu.Unlock()
	s.Messages.mu.Lock()
	st.TotalMessages = int64(len(s.Messages.rows))
	s.Messages.mu.Unlock()
	return st, nil
}

func page[T any](rows []T, limit, offset int) []T {
	if offset < 0 || limit <= 0 || offset >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if limit < end-offset {
		end = offset + limit
	}
	return rows[offset:end]
}

type Products struct {
	mu     sync.Mutex
	rows   map[uint]models.Product
	nextID uint
}

func (r *Products) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *Products) List(limit, offset int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Product, 0, len(r.rows))
	for _, p := range r.rows {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return page(all, limit, offset), nil
}

func (r *Products) GetByID(id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *Products) ImageOf(id uint) (*string, error) {
	p, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	return p.Image, nil
}

func (r *Products) Create(p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.rows[p.ID] = *p
	return nil
}

func (r *Products) Update(id uint, f models.ProductFields, image *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Name, p.Description, p.Price, p.Stock, p.Category = f.Name, f.Description, f.Price, f.Stock, f.Category
	if image != nil {
		img := *image
		p.Image = &img
	}
	p.UpdatedAt = time.Now()
	r.rows[id] = p
	return nil
}

func (r *Products) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type Categories struct {
	mu     sync.Mutex
	rows   map[uint]models.Category
	nextID uint
}

func (r *Categories) List() ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]models.Category, 0, len(r.rows))
	for _, c := range r.rows {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *Categories) nameTaken(name string, except uint) bool {
	for id, c := range r.rows {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (r *Categories) Create(c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(c.Name, 0) {
		return ErrDuplicate
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.rows[c.ID] = *c
	return nil
}

func (r *Categories) Update(id uint, name, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.nameTaken(name, id) {
		return ErrDuplicate
	}
	c.Name, c.Description = name, description
	r.rows[id] = c
	return nil
}

func (r *Categories) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type Settings struct {
	mu   sync.Mutex
	rows []models.Setting
}

func (r *Settings) Latest() (*models.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rows) == 0 {
		return nil, repository.ErrNotFound
	}
	s := r.rows[len(r.rows)-1]
	return &s, nil
}

func (r *Settings) LatestID() (uint, error) {
	s, err := r.Latest()
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (r *Settings) Create(s *models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uint(len(r.rows) + 1)
	r.rows = append(r.rows, *s)
	return nil
}

func (r *Settings) Update(id uint, s models.Setting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			s.ID = id
			r.rows[i] = s
			return nil
		}
	}
	return repository.ErrNotFound
}

// Len reports how many settings rows exist.
func (r *Settings) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type Messages struct {
	mu     sync.Mutex
	rows   map[uint]models.Message
	nextID uint
}

func (r *Messages) Create(m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.rows[m.ID] = *m
	return nil
}

func (r *Messages) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *Messages) List(limit, offset int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]models.Message, 0, len(r.rows))
	for _, m := range r.rows {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, limit, offset), nil
}

func (r *Messages) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type Users struct {
	mu     sync.Mutex
	rows   map[string]models.User
	nextID uint
}

// Seed adds a credential with a bcrypt-hashed password.
func (r *Users) Seed(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[username]; ok {
		return ErrDuplicate
	}
	r.nextID++
	r.rows[username] = models.User{ID: r.nextID, Username: username, PasswordHash: string(hash)}
	return nil
}

func (r *Users) GetByUsername(username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
