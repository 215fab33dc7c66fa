// Package client is a typed wrapper over the storefront REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New returns a client for the API rooted at baseURL (for example
// "http://localhost:5000/api"). A nil session is an anonymous one.
func New(baseURL string, session *Session, hc *http.Client) *Client {
	if session == nil {
		session = &Session{}
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc, session: session}
}

func (c *Client) Session() *Session { return c.session }

type ProductPage struct {
	Products    []Product `json:"products"`
	Total       int64     `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

type MessagePage struct {
	Messages    []Message `json:"messages"`
	Total       int64     `json:"total"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}

type Stats struct {
	TotalProducts    int64 `json:"totalProducts"`
	TotalCategories  int64 `json:"totalCategories"`
	TotalMessages    int64 `json:"totalMessages"`
	LowStockProducts int64 `json:"lowStockProducts"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProductInput is a product write. Image is optional; when set, ImageName and
// ImageType describe the file.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Image       io.Reader
	ImageName   string
	ImageType   string
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type created struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

type statusMessage struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	c.session.SetToken(resp.Token)
	return nil
}

func (c *Client) Logout() { c.session.Clear() }

func (c *Client) Me(ctx context.Context) (id uint, username string, err error) {
	var resp struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	err = c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &resp)
	return resp.ID, resp.Username, err
}

func (c *Client) Products(ctx context.Context, page, limit int) (*ProductPage, error) {
	var out ProductPage
	if err := c.doJSON(ctx, http.MethodGet, "/products"+pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Product(ctx context.Context, id uint) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (uint, error) {
	var out created
	if err := c.doMultipart(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, in ProductInput) error {
	return c.doMultipart(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, name, description string) (uint, error) {
	var out created
	body := map[string]string{"name": name, "description": description}
	if err := c.doJSON(ctx, http.MethodPost, "/categories", body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, name, description string) error {
	body := map[string]string{"name": name, "description": description}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), body, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

func (c *Client) Settings(ctx context.Context) (*Setting, error) {
	var out Setting
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSettings(ctx context.Context, s Setting) error {
	s.ID = 0
	return c.doJSON(ctx, http.MethodPut, "/settings", s, nil)
}

func (c *Client) SendMessage(ctx context.Context, in ContactInput) (uint, error) {
	var out created
	if err := c.doJSON(ctx, http.MethodPost, "/contact", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) Messages(ctx context.Context, page, limit int) (*MessagePage, error) {
	var out MessagePage
	if err := c.doJSON(ctx, http.MethodGet, "/messages"+pageQuery(page, limit), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d", id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.doJSON(ctx, http.MethodGet, "/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) doMultipart(ctx context.Context, method, path string, in ProductInput, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"name", in.Name},
		{"description", in.Description},
		{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		{"stock", strconv.Itoa(in.Stock)},
		{"category", in.Category},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	if in.Image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(in.ImageName)))
		h.Set("Content-Type", in.ImageType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, in.Image); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m statusMessage
		_ = json.Unmarshal(raw, &m)
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
