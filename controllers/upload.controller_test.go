package controllers_test

import (
	"net/http"
	"testing"

	"jmt-archery-backend/services"
)

func TestUploadRoute(t *testing.T) {
	app := newApp(t)

	w := app.upload("bow.png", 1024*1024)
	expectStatus(t, w, http.StatusOK)
	var out struct {
		URL string `json:"url"`
	}
	decode(t, w, &out)
	if out.URL != "https://cdn.example.com/x.png" {
		t.Fatalf("url = %q", out.URL)
	}

	expectStatus(t, app.upload("anim.gif", 10), http.StatusBadRequest)
	expectStatus(t, app.upload("huge.jpg", 3*1024*1024), http.StatusBadRequest)

	app.ctrl.Media = services.NewMediaService(nil, services.MediaConfig{})
	expectStatus(t, app.upload("bow.webp", 10), http.StatusServiceUnavailable)
}

func TestUploadWithoutFile(t *testing.T) {
	app := newApp(t)
	expectStatus(t, app.do(http.MethodPost, "/api/upload", "", map[string]any{}), http.StatusBadRequest)
}
