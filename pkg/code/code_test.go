package code

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDataReturnsDetachedCopy(t *testing.T) {
	a := Success.WithData("payload-a")
	b := Success.WithData("payload-b")

	assert.Equal(t, "payload-a", a.Data())
	assert.Equal(t, "payload-b", b.Data())

	// 已注册的响应码本身不携带负载
	assert.False(t, Success.HaveData())
	assert.Nil(t, Success.Data())
	assert.False(t, Success.HaveDetails())
}

func TestWithDetailsChainKeepsData(t *testing.T) {
	c := ErrorNotesMergeFailed.WithData("noteId").WithDetails("d1", "d2")

	assert.Equal(t, "noteId", c.Data())
	require.True(t, c.HaveDetails())
	assert.Equal(t, []string{"d1", "d2"}, c.Details())

	assert.False(t, ErrorNotesMergeFailed.HaveData())
	assert.False(t, ErrorNotesMergeFailed.HaveDetails())
}

func TestWithStatusCodeKeepsRegisteredCode(t *testing.T) {
	c := ErrorInvalidParams.WithStatusCode(http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, c.StatusCode())
	assert.Equal(t, http.StatusOK, ErrorInvalidParams.StatusCode())
}

// 多个连接并发广播时共享同一个注册响应码
func TestConcurrentWithData(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c := Success.WithData(n)
				if got, ok := c.Data().(int); !ok || got != n {
					t.Errorf("expected data %d, got %v", n, c.Data())
					return
				}
			}
		}(i)
	}
	wg.Wait()

	assert.False(t, Success.HaveData())
}
