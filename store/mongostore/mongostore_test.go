package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"jmt-archery-backend/store/storetest"
)

// TEST_MONGO_URI harus menunjuk ke replica set karena order dan pembayaran
// memakai transaksi, misalnya mongodb://localhost:27017/jmt_test?replicaSet=rs0.
func TestContract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, uri)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	storetest.Run(t, s)
}
