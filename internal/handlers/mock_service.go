package handlers

import (
	"context"
	"net/http"

	"book_catalog/internal/models"
	"book_catalog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuthz struct {
	loginToken string
	loginErr   error
	parseID    int
	parseErr   error
	resolved   *models.User
	resolveErr error

	lastLoginEmail    string
	lastLoginPassword string
	lastResolveToken  string
}

func (m *mockAuthz) Login(ctx context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockAuthz) ParseToken(token string) (int, error) {
	return m.parseID, m.parseErr
}
func (m *mockAuthz) ResolveUser(ctx context.Context, token string) (*models.User, error) {
	m.lastResolveToken = token
	return m.resolved, m.resolveErr
}

type mockUsers struct {
	listResp   []models.User
	listErr    error
	getResp    *models.UserWithBooks
	getErr     error
	createResp *models.User
	createErr  error
	updateResp *models.User
	updateErr  error
	deleteErr  error
	booksResp  []models.Book
	booksErr   error

	lastCreateUsername string
	lastCreateEmail    string
	lastCreatePassword string
	lastUpdateID       int
	lastUpdate         service.UserUpdate
	lastDeleteID       int
}

func (m *mockUsers) List(ctx context.Context) ([]models.User, error) {
	return m.listResp, m.listErr
}
func (m *mockUsers) Get(ctx context.Context, id int) (*models.UserWithBooks, error) {
	return m.getResp, m.getErr
}
func (m *mockUsers) Create(ctx context.Context, username, email, password string) (*models.User, error) {
	m.lastCreateUsername = username
	m.lastCreateEmail = email
	m.lastCreatePassword = password
	return m.createResp, m.createErr
}
func (m *mockUsers) Update(ctx context.Context, id int, in service.UserUpdate) (*models.User, error) {
	m.lastUpdateID = id
	m.lastUpdate = in
	return m.updateResp, m.updateErr
}
func (m *mockUsers) Delete(ctx context.Context, id int) error {
	m.lastDeleteID = id
	return m.deleteErr
}
func (m *mockUsers) Books(ctx context.Context, userID int) ([]models.Book, error) {
	return m.booksResp, m.booksErr
}

type mockBooks struct {
	listResp   []models.BookWithVotes
	listErr    error
	getResp    *models.BookWithOwner
	getErr     error
	createResp *models.Book
	createErr  error
	updateResp *models.Book
	updateErr  error
	deleteErr  error

	lastListParams    service.ListParams
	lastCreateOwnerID int
	lastUpdateActorID int
	lastUpdateBookID  int
	lastUpdatePatch   models.BookPatch
	lastDeleteActorID int
	lastDeleteBookID  int
}

func (m *mockBooks) List(ctx context.Context, p service.ListParams) ([]models.BookWithVotes, error) {
	m.lastListParams = p
	return m.listResp, m.listErr
}
func (m *mockBooks) Get(ctx context.Context, id int) (*models.BookWithOwner, error) {
	return m.getResp, m.getErr
}
func (m *mockBooks) Create(ctx context.Context, ownerID int, title, author string, price float64) (*models.Book, error) {
	m.lastCreateOwnerID = ownerID
	return m.createResp, m.createErr
}
func (m *mockBooks) Update(ctx context.Context, actorID, bookID int, p models.BookPatch) (*models.Book, error) {
	m.lastUpdateActorID = actorID
	m.lastUpdateBookID = bookID
	m.lastUpdatePatch = p
	return m.updateResp, m.updateErr
}
func (m *mockBooks) Delete(ctx context.Context, actorID, bookID int) error {
	m.lastDeleteActorID = actorID
	m.lastDeleteBookID = bookID
	return m.deleteErr
}

type mockVotes struct {
	msg string
	err error

	lastUserID    int
	lastBookID    int
	lastDirection int
}

func (m *mockVotes) Toggle(ctx context.Context, userID, bookID, direction int) (string, error) {
	m.lastUserID = userID
	m.lastBookID = bookID
	m.lastDirection = direction
	return m.msg, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
