package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tokobagus/config"
	"tokobagus/internal/domain"
	"tokobagus/internal/memstore"
	"tokobagus/internal/router"
	"tokobagus/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newAPI(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.JWT.Secret = "client-test-secret"

	store := memstore.New()
	require.NoError(t, store.Users.Seed("admin", "admin123"))
	images, err := storage.NewLocalStore(t.TempDir(), cfg.Storage.PublicPath)
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(router.Setup(t.Context(), cfg, log, router.MemoryStores(store), images))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", &Session{}, srv.Client())
}

func apiStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "want *APIError, got %v", err)
	return apiErr.Status, apiErr.Message
}

func TestLogin(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	status, msg := apiStatus(t, c.Login(ctx, "admin", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", msg)
	assert.False(t, c.Session().LoggedIn())

	require.NoError(t, c.Login(ctx, "admin", "admin123"))
	assert.True(t, c.Session().LoggedIn())

	_, username, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	c.Logout()
	_, _, err = c.Me(ctx)
	status, msg = apiStatus(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", msg)
}

func TestCategoriesNeedToken(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.CreateCategory(ctx, "Sembako", "")
	status, _ := apiStatus(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	require.NoError(t, c.Login(ctx, "admin", "admin123"))
	id, err := c.CreateCategory(ctx, "Sembako", "Kebutuhan pokok")
	require.NoError(t, err)
	require.NoError(t, c.UpdateCategory(ctx, id, "Sembako Murah", ""))

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Sembako Murah", cats[0].Name)

	require.NoError(t, c.DeleteCategory(ctx, id))
	status, msg := apiStatus(t, c.DeleteCategory(ctx, id))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Category not found", msg)
}

func TestProductLifecycle(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "admin", "admin123"))

	id, err := c.CreateProduct(ctx, ProductInput{
		Name:      "Minyak Goreng",
		Price:     18500.5,
		Stock:     7,
		Category:  "Sembako",
		Image:     strings.NewReader("png-bytes"),
		ImageName: "minyak.png",
		ImageType: "image/png",
	})
	require.NoError(t, err)

	p, err := c.Product(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Minyak Goreng", p.Name)
	assert.Equal(t, 18500.5, p.Price)
	require.NotNil(t, p.Image)

	require.NoError(t, c.UpdateProduct(ctx, id, ProductInput{Name: "Minyak Goreng 2L", Price: 36000, Stock: 3, Category: "Sembako"}))
	p, err = c.Product(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Minyak Goreng 2L", p.Name)
	require.NotNil(t, p.Image, "image is kept when none is sent")

	page, err := c.Products(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)

	_, err = c.CreateProduct(ctx, ProductInput{
		Name:      "Catatan",
		Image:     strings.NewReader("text"),
		ImageName: "notes.txt",
		ImageType: "text/plain",
	})
	status, msg := apiStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Only image files are allowed", msg)

	require.NoError(t, c.DeleteProduct(ctx, id))
	_, err = c.Product(ctx, id)
	status, msg = apiStatus(t, err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", msg)
}

func TestSettingsContactAndStats(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	s, err := c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPhone, s.Phone)

	msgID, err := c.SendMessage(ctx, ContactInput{Name: "Yohana", Phone: "0813", Subject: "Harga", Message: "Berapa harga beras?"})
	require.NoError(t, err)
	assert.NotZero(t, msgID)

	require.NoError(t, c.Login(ctx, "admin", "admin123"))
	require.NoError(t, c.UpdateSettings(ctx, Setting{Address: "Jl Baru", Phone: "0800", MapsURL: "https://maps.example", AboutUs: "Toko"}))
	s, err = c.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jl Baru", s.Address)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalMessages)

	inbox, err := c.Messages(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "Berapa harga beras?", inbox.Messages[0].Body)
	require.NoError(t, c.DeleteMessage(ctx, inbox.Messages[0].ID))

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "OK", h.Status)
}

func TestBearerHeaderFollowsSession(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","message":"Server is running"}`))
	}))
	defer srv.Close()

	sess := &Session{}
	c := New(srv.URL, sess, srv.Client())
	_, err := c.Health(context.Background())
	require.NoError(t, err)
	sess.SetToken("abc")
	_, err = c.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc"}, got)
}

func TestSessionPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())

	s.SetToken("tok")
	require.NoError(t, s.Save(path))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token())
}

func TestFilterProducts(t *testing.T) {
	page := []Product{
		{ID: 1, Name: "Beras Premium", Category: "Sembako"},
		{ID: 2, Name: "Kopi Bubuk", Category: "Minuman"},
		{ID: 3, Name: "Teh Celup", Category: "minuman"},
	}

	ids := func(ps []Product) []uint {
		out := []uint{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []uint{1}, ids(FilterProducts(page, "beras")))
	assert.Equal(t, []uint{2, 3}, ids(FilterProducts(page, "MINUM")))
	assert.Equal(t, []uint{1, 2, 3}, ids(FilterProducts(page, "  ")))
	// Products on other pages are never consulted.
	assert.Empty(t, FilterProducts(page[1:], "beras"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "Rp 75.000", FormatPrice(75000))
	assert.Equal(t, "Rp 500", FormatPrice(500))
}

func TestWireFormat(t *testing.T) {
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /messages":
			_, _ = w.Write([]byte(`{"messages":[{"id":4,"name":"Yohana","email":"","phone":"0813","subject":"Harga","message":"Ada beras?","created_at":"2024-05-01T08:00:00Z"}],"total":1,"currentPage":1,"totalPages":1}`))
		case "GET /products/9":
			_, _ = w.Write([]byte(`{"id":9,"name":"Beras","description":"","price":75000,"stock":3,"category":"Sembako","image":null,"created_at":"2024-05-01T08:00:00Z","updated_at":"2024-05-01T08:00:00Z"}`))
		case "PUT /settings":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			_, _ = w.Write([]byte(`{"message":"Settings updated successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := New(srv.URL, nil, srv.Client())
	ctx := context.Background()

	inbox, err := c.Messages(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 1)
	assert.Equal(t, "Ada beras?", inbox.Messages[0].Body)
	assert.Equal(t, 2024, inbox.Messages[0].CreatedAt.Year())

	p, err := c.Product(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, Product{
		ID: 9, Name: "Beras", Price: 75000, Stock: 3, Category: "Sembako",
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}, *p)
	assert.Nil(t, p.Image)

	require.NoError(t, c.UpdateSettings(ctx, Setting{ID: 7, Address: "Jl Baru"}))
	assert.NotContains(t, sent, "id")
	assert.Equal(t, "Jl Baru", sent["address"])
}
