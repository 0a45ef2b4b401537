package context

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	t.Run("should round trip through a context", func(t *testing.T) {
		current := NewCurrent()
		current.Set(RequestIDKey, "req-1")
		current.Set(UserEmailKey, "alice@x.io")

		ctx := WithCurrent(context.Background(), current)
		got, ok := FromContext(ctx)

		assert.True(t, ok)
		assert.Equal(t, "req-1", got.RequestID())
		assert.Equal(t, "alice@x.io", got.UserEmail())
	})

	t.Run("should return an empty current when missing", func(t *testing.T) {
		current := GetCurrent(context.Background())

		assert.Equal(t, "", current.UserEmail())
		assert.False(t, current.Exists(RequestIDKey))
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		current := NewCurrent()
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				current.Set(PathKey, i)
				_ = current.All()
			}(i)
		}
		wg.Wait()

		assert.True(t, current.Exists(PathKey))
	})
}
