package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestReviewRoutes(t *testing.T) {
	app := newApp(t)
	u, _ := app.user("reviewer", false)
	p := app.product("compound-bow", 3200000, 2)

	expectStatus(t, app.do(http.MethodPost, "/api/review", "", map[string]any{
		"userId": u.ID, "rating": 6, "comment": "Way too good to be true",
	}), http.StatusBadRequest)
	expectStatus(t, app.do(http.MethodPost, "/api/review", "", map[string]any{
		"userId": u.ID, "rating": 5, "comment": "too short",
	}), http.StatusBadRequest)
	expectStatus(t, app.do(http.MethodPost, "/api/review", "", map[string]any{
		"userId": 999, "rating": 5, "comment": "Excellent product, highly recommend!",
	}), http.StatusNotFound)

	w := app.do(http.MethodPost, "/api/review", "", map[string]any{
		"userId": u.ID, "rating": 5, "comment": "  Excellent product, highly recommend!  ", "productId": p.ID,
	})
	expectStatus(t, w, http.StatusCreated)
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked: %s", w.Body.String())
	}
	var created struct {
		Review struct {
			Comment string `json:"comment"`
			User    struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		} `json:"review"`
	}
	decode(t, w, &created)
	if created.Review.Comment != "Excellent product, highly recommend!" || created.Review.User.Name != "reviewer" {
		t.Fatalf("unexpected review %s", w.Body.String())
	}

	expectStatus(t, app.do(http.MethodPost, "/api/review", "", map[string]any{
		"userId": u.ID, "rating": 4, "comment": "Great shop, quick delivery",
	}), http.StatusCreated)

	var list struct {
		Success bool             `json:"success"`
		Reviews []map[string]any `json:"reviews"`
	}
	for _, tc := range []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?productId=null", 2},
		{fmt.Sprintf("?productId=%d", p.ID), 1},
	} {
		w := app.do(http.MethodGet, "/api/review"+tc.query, "", nil)
		expectStatus(t, w, http.StatusOK)
		decode(t, w, &list)
		if len(list.Reviews) != tc.want {
			t.Errorf("query %q: %d reviews, want %d", tc.query, len(list.Reviews), tc.want)
		}
	}
	expectStatus(t, app.do(http.MethodGet, "/api/review?productId=abc", "", nil), http.StatusBadRequest)

	w = app.do(http.MethodGet, "/api/review/latest", "", nil)
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &list)
	if !list.Success || len(list.Reviews) != 2 || list.Reviews[0]["comment"] != "Great shop, quick delivery" {
		t.Fatalf("latest reviews %s", w.Body.String())
	}
}
