package db

import (
	"context"
	"testing"
)

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "://not a url", 10, 1)
	if err == nil {
		t.Fatal("expected error for invalid database url")
	}
}
