package services

import (
	"context"
	"sync"
	"testing"

	"jmt-archery-backend/models"
	"jmt-archery-backend/store/memstore"
)

type recordedEvent struct {
	name    string
	payload any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingNotifier) Publish(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{event, payload})
}

func (r *recordingNotifier) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.name
	}
	return out
}

func seedUser(t *testing.T, s *memstore.Store, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "x", IsActive: true}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProduct(t *testing.T, s *memstore.Store, name string, price float64, stock int) *models.Product {
	t.Helper()
	p, err := productFromInput(models.ProductInput{Name: name, Price: &price, Stock: &stock, Image: "https://img.example.com/" + name + ".png"})
	if err != nil {
		t.Fatalf("product input: %v", err)
	}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func ptr[T any](v T) *T { return &v }
