package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/pustakahq/bookstore-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/pustakahq/bookstore-api/internal/domains/catalog/application"
	ordersmemory "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/pustakahq/bookstore-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/pustakahq/bookstore-api/internal/domains/orders/application"
	usersauth "github.com/pustakahq/bookstore-api/internal/domains/users/adapters/auth"
	usersmemory "github.com/pustakahq/bookstore-api/internal/domains/users/adapters/memory"
	usersapp "github.com/pustakahq/bookstore-api/internal/domains/users/application"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *meta           `json:"meta"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	tokens, err := usersauth.NewJWTIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	store := catalogmemory.NewStore()
	catalog := catalogapp.NewService(store.GenreRepo(), store.BookRepo())
	orders := ordersapp.NewService(ordersmemory.NewRepository(store), store)
	users := usersapp.NewService(usersmemory.NewRepository(), tokens)

	return NewRouter(Dependencies{
		Catalog:   catalog,
		Users:     users,
		Orders:    orders,
		Workflows: ordersworkflows.NewInlineOrderWorkflows(orders),
		Tokens:    tokens,
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) (int, testEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	status, _ := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"email": email, "username": "reader", "password": "s3cretpass"}, "")
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, router, http.MethodPost, "/api/auth/login",
		gin.H{"email": email, "password": "s3cretpass"}, "")
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createGenre(t *testing.T, router *gin.Engine, token, name string) string {
	t.Helper()
	status, env := doJSON(t, router, http.MethodPost, "/api/genres", gin.H{"name": name}, token)
	require.Equal(t, http.StatusCreated, status)
	var genre genreResponse
	require.NoError(t, json.Unmarshal(env.Data, &genre))
	return genre.ID
}

func createBook(t *testing.T, router *gin.Engine, token, title, genreID string, price float64, stock int) string {
	t.Helper()
	status, env := doJSON(t, router, http.MethodPost, "/api/books", gin.H{
		"title":          title,
		"writer":         "Test Writer",
		"genre_id":       genreID,
		"price":          price,
		"stock_quantity": stock,
	}, token)
	require.Equal(t, http.StatusCreated, status)
	var book bookResponse
	require.NoError(t, json.Unmarshal(env.Data, &book))
	return book.ID
}

func TestAuthFlow(t *testing.T) {
	router := newTestRouter(t)

	token := registerAndLogin(t, router, "reader@example.com")

	// Duplicate registration is a validation failure.
	status, env := doJSON(t, router, http.MethodPost, "/api/auth/register",
		gin.H{"email": "reader@example.com", "password": "s3cretpass"}, "")
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, env.Success)

	// Wrong password is unauthorized.
	status, _ = doJSON(t, router, http.MethodPost, "/api/auth/login",
		gin.H{"email": "reader@example.com", "password": "wrongpass1"}, "")
	require.Equal(t, http.StatusUnauthorized, status)

	// Profile requires the token.
	status, _ = doJSON(t, router, http.MethodGet, "/api/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, env = doJSON(t, router, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, status)
	var me userResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	require.Equal(t, "reader@example.com", me.Email)
}

func TestGenreCRUD(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "admin@example.com")

	// Mutations need auth.
	status, _ := doJSON(t, router, http.MethodPost, "/api/genres", gin.H{"name": "Fantasy"}, "")
	require.Equal(t, http.StatusUnauthorized, status)

	genreID := createGenre(t, router, token, "Fantasy")

	// Duplicate name rejected.
	status, _ = doJSON(t, router, http.MethodPost, "/api/genres", gin.H{"name": "fantasy"}, token)
	require.Equal(t, http.StatusBadRequest, status)

	// Public list carries pagination meta.
	status, env := doJSON(t, router, http.MethodGet, "/api/genres", nil, "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Meta)
	require.Equal(t, int64(1), env.Meta.Total)
	require.Equal(t, 1, env.Meta.Page)

	status, env = doJSON(t, router, http.MethodPatch, "/api/genres/"+genreID, gin.H{"name": "High Fantasy"}, token)
	require.Equal(t, http.StatusOK, status)
	var genre genreResponse
	require.NoError(t, json.Unmarshal(env.Data, &genre))
	require.Equal(t, "High Fantasy", genre.Name)

	status, _ = doJSON(t, router, http.MethodDelete, "/api/genres/"+genreID, nil, token)
	require.Equal(t, http.StatusOK, status)

	// Soft-deleted genres vanish from reads.
	status, _ = doJSON(t, router, http.MethodGet, "/api/genres/"+genreID, nil, "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestBookValidationAndSearch(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "admin@example.com")
	genreID := createGenre(t, router, token, "Fantasy")

	// Unknown genre reference is invalid input, not a missing resource.
	status, _ := doJSON(t, router, http.MethodPost, "/api/books", gin.H{
		"title": "Orphan", "writer": "Nobody", "genre_id": "00000000-0000-0000-0000-000000000000",
	}, token)
	require.Equal(t, http.StatusBadRequest, status)

	createBook(t, router, token, "The Hobbit", genreID, 14.99, 5)
	createBook(t, router, token, "Dune", genreID, 12.50, 3)

	status, env := doJSON(t, router, http.MethodGet, "/api/books?search=hobbit", nil, "")
	require.Equal(t, http.StatusOK, status)
	var books []bookResponse
	require.NoError(t, json.Unmarshal(env.Data, &books))
	require.Len(t, books, 1)
	require.Equal(t, "The Hobbit", books[0].Title)
	require.Equal(t, int64(1), env.Meta.Total)
}

func TestOrderPlacementAndStatistics(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "buyer@example.com")
	genreID := createGenre(t, router, token, "Fantasy")
	bookID := createBook(t, router, token, "The Hobbit", genreID, 10, 5)

	// Orders need auth.
	status, _ := doJSON(t, router, http.MethodPost, "/api/orders",
		gin.H{"items": []gin.H{{"book_id": bookID, "quantity": 2}}}, "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, env := doJSON(t, router, http.MethodPost, "/api/orders",
		gin.H{"items": []gin.H{{"book_id": bookID, "quantity": 2}}}, token)
	require.Equal(t, http.StatusCreated, status)
	var receipt receiptResponse
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	require.Equal(t, 2, receipt.TotalQuantity)
	require.InDelta(t, 20.0, receipt.TotalPrice, 1e-9)

	// Stock went down.
	status, env = doJSON(t, router, http.MethodGet, "/api/books/"+bookID, nil, "")
	require.Equal(t, http.StatusOK, status)
	var book bookResponse
	require.NoError(t, json.Unmarshal(env.Data, &book))
	require.Equal(t, 3, book.StockQuantity)

	// Oversell is rejected and names the shortfall.
	status, env = doJSON(t, router, http.MethodPost, "/api/orders",
		gin.H{"items": []gin.H{{"book_id": bookID, "quantity": 10}}}, token)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, env.Message, bookID)

	// The order shows up for its owner.
	status, env = doJSON(t, router, http.MethodGet, "/api/orders", nil, token)
	require.Equal(t, http.StatusOK, status)
	var orders []orderResponse
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	require.Equal(t, receipt.OrderID, orders[0].ID)

	// Statistics reflect the single order.
	status, env = doJSON(t, router, http.MethodGet, "/api/statistics", nil, "")
	require.Equal(t, http.StatusOK, status)
	var stats statisticsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Equal(t, 1, stats.TotalTransactions)
	require.InDelta(t, 20.0, stats.AverageNominalPerTransaction, 1e-9)
	require.NotNil(t, stats.MostSoldGenre)
	require.Equal(t, "Fantasy", *stats.MostSoldGenre)
}

func TestSoftDeleteKeepsHistoricalOrders(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "buyer@example.com")
	genreID := createGenre(t, router, token, "Fantasy")
	bookID := createBook(t, router, token, "The Hobbit", genreID, 10, 5)

	status, env := doJSON(t, router, http.MethodPost, "/api/orders",
		gin.H{"items": []gin.H{{"book_id": bookID, "quantity": 1}}}, token)
	require.Equal(t, http.StatusCreated, status)
	var receipt receiptResponse
	require.NoError(t, json.Unmarshal(env.Data, &receipt))

	status, _ = doJSON(t, router, http.MethodDelete, "/api/books/"+bookID, nil, token)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, router, http.MethodDelete, "/api/genres/"+genreID, nil, token)
	require.Equal(t, http.StatusOK, status)

	// The historical order still reads back with its item.
	status, env = doJSON(t, router, http.MethodGet, "/api/orders/"+receipt.OrderID, nil, token)
	require.Equal(t, http.StatusOK, status)
	var order orderResponse
	require.NoError(t, json.Unmarshal(env.Data, &order))
	require.Len(t, order.Items, 1)
	require.Equal(t, bookID, order.Items[0].BookID)

	// Statistics keep counting the soft-deleted genre.
	status, env = doJSON(t, router, http.MethodGet, "/api/statistics", nil, "")
	require.Equal(t, http.StatusOK, status)
	var stats statisticsResponse
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Equal(t, 1, stats.TotalTransactions)
	require.NotNil(t, stats.MostSoldGenre)
	require.Equal(t, "Fantasy", *stats.MostSoldGenre)
}
