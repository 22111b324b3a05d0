package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect_RejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "http://localhost:6379")
	assert.ErrorContains(t, err, "redis url")
}
