package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/auth"
	"jmt-archery-backend/controllers"
	"jmt-archery-backend/models"
	"jmt-archery-backend/notify"
	"jmt-archery-backend/routes"
	"jmt-archery-backend/services"
	"jmt-archery-backend/store/memstore"
)

type fakeHost struct{ url string }

func (f fakeHost) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return f.url, nil
}

type testApp struct {
	t      *testing.T
	store  *memstore.Store
	ctrl   *controllers.Controller
	router *gin.Engine
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memstore.New()
	tokens, err := auth.NewTokenMaker([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("token maker: %v", err)
	}
	hub := notify.NewHub([]string{"http://localhost:3000"})
	ctrl := &controllers.Controller{
		Catalog:   services.NewCatalogService(s, time.Second),
		Inventory: services.NewInventoryService(s, time.Second),
		Orders:    services.NewOrderService(s, time.Second, hub),
		Payments:  services.NewPaymentService(s, services.PaymentConfig{Timeout: time.Second}, hub),
		Reviews:   services.NewReviewService(s, time.Second),
		Media:     services.NewMediaService(fakeHost{url: "http://cdn.example.com/x.png"}, services.MediaConfig{}),
		Users:     services.NewUserService(s, time.Second),
		Stats:     services.NewStatsService(s, time.Second),
		Tokens:    tokens,
		Hub:       hub,
	}
	return &testApp{
		t:      t,
		store:  s,
		ctrl:   ctrl,
		router: routes.Setup(ctrl, "test", []string{"http://localhost:3000"}),
	}
}

// user membuat pengguna langsung di store dan mengembalikan token-nya.
func (a *testApp) user(name string, admin bool) (*models.User, string) {
	a.t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "x", IsActive: true, IsAdmin: admin}
	if err := a.store.CreateUser(context.Background(), u); err != nil {
		a.t.Fatalf("create user: %v", err)
	}
	token, err := a.ctrl.Tokens.Issue(u)
	if err != nil {
		a.t.Fatalf("issue token: %v", err)
	}
	return u, token
}

func (a *testApp) product(name string, price float64, stock int) *models.Product {
	a.t.Helper()
	p, err := a.ctrl.Catalog.CreateProduct(context.Background(), models.ProductInput{
		Name: name, Price: &price, Stock: &stock, Image: "https://img.example.com/" + name + ".png",
	})
	if err != nil {
		a.t.Fatalf("create product: %v", err)
	}
	return p
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) upload(filename string, size int) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		a.t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write(bytes.Repeat([]byte{1}, size))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body = %s", w.Code, want, w.Body.String())
	}
}
