package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"jmt-archery-backend/store/memstore"
)

func TestCreateReviewValidation(t *testing.T) {
	s := memstore.New()
	u := seedUser(t, s, "wayan")
	reviews := NewReviewService(s, time.Second)
	ctx := context.Background()

	cases := []struct {
		name    string
		rating  int
		comment string
		want    error
	}{
		{"rating zero", 0, "Great bow, shoots straight", ErrInvalidArgument},
		{"rating six", 6, "Great bow, shoots straight", ErrInvalidArgument},
		{"nine chars", 4, "  123456789  ", ErrInvalidArgument},
		{"ten chars", 4, "  1234567890  ", nil},
	}
	for _, tc := range cases {
		_, err := reviews.CreateReview(ctx, ReviewInput{UserID: u.ID, Rating: tc.rating, Comment: tc.comment})
		if tc.want == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateReviewJoinsPublicUser(t *testing.T) {
	s := memstore.New()
	var target int64
	for i := 1; i <= 7; i++ {
		target = seedUser(t, s, fmt.Sprintf("user%d", i)).ID
	}
	if target != 7 {
		t.Fatalf("seed produced id %d, want 7", target)
	}
	reviews := NewReviewService(s, time.Second)

	r, err := reviews.CreateReview(context.Background(), ReviewInput{
		UserID:  7,
		Rating:  5,
		Comment: "Excellent product, highly recommend!",
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if r.User == nil || r.User.ID != 7 || r.User.Name != "user7" || r.User.Email != "user7@example.com" {
		t.Fatalf("user projection = %+v", r.User)
	}
	if r.ProductID != nil {
		t.Fatal("site-wide review should have no product")
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "password") {
		t.Fatalf("password leaked: %s", raw)
	}
}

func TestCreateReviewUnknownReferences(t *testing.T) {
	s := memstore.New()
	u := seedUser(t, s, "made")
	reviews := NewReviewService(s, time.Second)
	ctx := context.Background()

	if _, err := reviews.CreateReview(ctx, ReviewInput{UserID: 999, Rating: 3, Comment: "Decent quality for the price"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: err = %v", err)
	}
	if _, err := reviews.CreateReview(ctx, ReviewInput{UserID: u.ID, ProductID: ptr(int64(999)), Rating: 3, Comment: "Decent quality for the price"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown product: err = %v", err)
	}
}

func TestListAndLatestReviews(t *testing.T) {
	s := memstore.New()
	u := seedUser(t, s, "komang")
	p := seedProduct(t, s, "longbow", 1200000, 2)
	reviews := NewReviewService(s, time.Second)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		in := ReviewInput{UserID: u.ID, Rating: 4, Comment: fmt.Sprintf("Review number %d is here", i)}
		if i%2 == 0 {
			in.ProductID = &p.ID
		}
		if _, err := reviews.CreateReview(ctx, in); err != nil {
			t.Fatalf("CreateReview %d: %v", i, err)
		}
	}

	all, err := reviews.ListReviews(ctx, nil)
	if err != nil || len(all) != 5 {
		t.Fatalf("all reviews = %d, err = %v", len(all), err)
	}
	forProduct, err := reviews.ListReviews(ctx, &p.ID)
	if err != nil || len(forProduct) != 3 {
		t.Fatalf("product reviews = %d, err = %v", len(forProduct), err)
	}
	latest, err := reviews.LatestReviews(ctx, 0)
	if err != nil {
		t.Fatalf("LatestReviews: %v", err)
	}
	if len(latest) != DefaultLatestLimit {
		t.Fatalf("latest = %d, want %d", len(latest), DefaultLatestLimit)
	}
	if latest[0].Comment != "Review number 4 is here" {
		t.Fatalf("latest[0] = %q, want newest", latest[0].Comment)
	}
	for _, r := range latest {
		if r.User == nil {
			t.Fatal("latest reviews should include the user projection")
		}
	}
}
