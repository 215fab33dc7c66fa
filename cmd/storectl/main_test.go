package main

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tokobagus/config"
	"tokobagus/internal/memstore"
	"tokobagus/internal/models"
	"tokobagus/internal/router"
	"tokobagus/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	url     string
	session string
	store   *memstore.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.JWT.Secret = "storectl-secret"
	store := memstore.New()
	require.NoError(t, store.Users.Seed("admin", "admin123"))
	images, err := storage.NewLocalStore(t.TempDir(), cfg.Storage.PublicPath)
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(router.Setup(t.Context(), cfg, log, router.MemoryStores(store), images))
	t.Cleanup(srv.Close)
	return &harness{t: t, url: srv.URL + "/api", session: filepath.Join(t.TempDir(), "session.json"), store: store}
}

func (h *harness) run(args ...string) (string, error) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", h.url, "--session", h.session}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginPersistsSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("categories", "create", "Sembako")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No token provided")

	out, err := h.run("login", "-p", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Login successful")
	_, err = os.Stat(h.session)
	require.NoError(t, err)

	out, err = h.run("categories", "create", "Sembako")
	require.NoError(t, err)
	assert.Contains(t, out, "Category created successfully")

	_, err = h.run("logout")
	require.NoError(t, err)
	_, err = h.run("categories", "create", "Minuman")
	require.Error(t, err)
}

func TestProductsListSearchesCurrentPage(t *testing.T) {
	h := newHarness(t)
	for _, name := range []string{"Beras Premium", "Kopi Bubuk", "Beras Merah"} {
		require.NoError(t, h.store.Products.Create(&models.Product{Name: name, Category: "Sembako", Price: 12000, Stock: 5}))
	}

	out, err := h.run("products", "list", "--search", "beras")
	require.NoError(t, err)
	assert.Contains(t, out, "Beras Premium")
	assert.Contains(t, out, "Beras Merah")
	assert.NotContains(t, out, "Kopi Bubuk")
	assert.Contains(t, out, "page 1 of 1 (3 products)")

	// Newest first, so page 2 of size 1 holds only "Kopi Bubuk".
	out, err = h.run("products", "list", "--limit", "1", "--page", "2", "--search", "beras")
	require.NoError(t, err)
	assert.NotContains(t, out, "Beras")
	assert.Contains(t, out, "page 2 of 3")
}

func TestProductCreateWithImage(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("login", "-p", "admin123")
	require.NoError(t, err)

	img := filepath.Join(t.TempDir(), "gula.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o644))
	out, err := h.run("products", "create", "--name", "Gula Pasir", "--price", "15000", "--stock", "8", "--image", img)
	require.NoError(t, err)
	assert.Contains(t, out, "Product created successfully")

	p, err := h.store.Products.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, p.Image)

	out, err = h.run("products", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Gula Pasir")
	assert.Contains(t, out, *p.Image)
}
