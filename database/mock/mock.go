// Package mock provides an in-memory implementation of database.DB for testing.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/jon4hz/prodkeep/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	// User storage
	users      map[uint]*database.User
	nextUserID uint

	// Token storage
	tokens      map[uint]*database.AuthToken
	nextTokenID uint
	nextKey     int

	// Product storage
	products      map[uint]*database.Product
	nextProductID uint

	// Error simulation
	CreateUserError             error
	GetUserByEmailError         error
	GetUserByIDError            error
	GetAllUsersError            error
	UpdateUserError             error
	GetOrCreateTokenError       error
	GetUserByTokenKeyError      error
	CreateProductError          error
	GetProductsByOwnerError     error
	GetProductByIDAndOwnerError error
	UpdateProductError          error
	DeleteProductError          error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:         make(map[uint]*database.User),
		nextUserID:    1,
		tokens:        make(map[uint]*database.AuthToken),
		nextTokenID:   1,
		products:      make(map[uint]*database.Product),
		nextProductID: 1,
	}
}

// Reset clears all data and errors from the mock database.
func (m *MockDB) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[uint]*database.User)
	m.nextUserID = 1
	m.tokens = make(map[uint]*database.AuthToken)
	m.nextTokenID = 1
	m.nextKey = 0
	m.products = make(map[uint]*database.Product)
	m.nextProductID = 1

	m.CreateUserError = nil
	m.GetUserByEmailError = nil
	m.GetUserByIDError = nil
	m.GetAllUsersError = nil
	m.UpdateUserError = nil
	m.GetOrCreateTokenError = nil
	m.GetUserByTokenKeyError = nil
	m.CreateProductError = nil
	m.GetProductsByOwnerError = nil
	m.GetProductByIDAndOwnerError = nil
	m.UpdateProductError = nil
	m.DeleteProductError = nil
}

func (m *MockDB) CreateUser(_ context.Context, email, name, password string) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}
	if strings.TrimSpace(email) == "" {
		return nil, database.ErrEmailRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	email = database.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return nil, database.ErrEmailTaken
		}
	}

	user := &database.User{
		Email:    email,
		Name:     name,
		IsActive: true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	user.ID = m.nextUserID
	m.nextUserID++
	m.users[user.ID] = user

	cp := *user
	return &cp, nil
}

func (m *MockDB) CreateSuperuser(ctx context.Context, email, password string) (*database.User, error) {
	user, err := m.CreateUser(ctx, email, "", password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := m.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (m *MockDB) GetUserByEmail(_ context.Context, email string) (*database.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	email = database.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockDB) GetUserByID(_ context.Context, id uint) (*database.User, error) {
	if m.GetUserByIDError != nil {
		return nil, m.GetUserByIDError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockDB) GetAllUsers(_ context.Context) ([]database.User, error) {
	if m.GetAllUsersError != nil {
		return nil, m.GetAllUsersError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]database.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockDB) UpdateUser(_ context.Context, user *database.User) error {
	if m.UpdateUserError != nil {
		return m.UpdateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockDB) GetOrCreateToken(_ context.Context, userID uint) (*database.AuthToken, error) {
	if m.GetOrCreateTokenError != nil {
		return nil, m.GetOrCreateTokenError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}

	m.nextKey++
	token := &database.AuthToken{
		Key:    fmt.Sprintf("mock-token-%d", m.nextKey),
		UserID: userID,
	}
	token.ID = m.nextTokenID
	m.nextTokenID++
	m.tokens[token.ID] = token

	cp := *token
	return &cp, nil
}

func (m *MockDB) GetUserByTokenKey(_ context.Context, key string) (*database.User, error) {
	if m.GetUserByTokenKeyError != nil {
		return nil, m.GetUserByTokenKeyError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tokens {
		if t.Key == key {
			u, ok := m.users[t.UserID]
			if !ok || !u.IsActive {
				return nil, gorm.ErrRecordNotFound
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// SetToken registers a token key for a user, bypassing the login flow.
func (m *MockDB) SetToken(userID uint, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := &database.AuthToken{
		Key:    key,
		UserID: userID,
	}
	token.ID = m.nextTokenID
	m.nextTokenID++
	m.tokens[token.ID] = token
}

func (m *MockDB) CreateProduct(_ context.Context, product *database.Product) error {
	if m.CreateProductError != nil {
		return m.CreateProductError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	product.ID = m.nextProductID
	m.nextProductID++
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *MockDB) GetProductsByOwner(_ context.Context, userID uint) ([]database.Product, error) {
	if m.GetProductsByOwnerError != nil {
		return nil, m.GetProductsByOwnerError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var products []database.Product
	for _, p := range m.products {
		if p.UserID == userID {
			products = append(products, *p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	return products, nil
}

func (m *MockDB) GetProductByIDAndOwner(_ context.Context, id, userID uint) (*database.Product, error) {
	if m.GetProductByIDAndOwnerError != nil {
		return nil, m.GetProductByIDAndOwnerError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok || p.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockDB) UpdateProduct(_ context.Context, product *database.Product) error {
	if m.UpdateProductError != nil {
		return m.UpdateProductError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *MockDB) DeleteProductByIDAndOwner(_ context.Context, id, userID uint) error {
	if m.DeleteProductError != nil {
		return m.DeleteProductError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok || p.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MockDB) Close() error {
	return nil
}
