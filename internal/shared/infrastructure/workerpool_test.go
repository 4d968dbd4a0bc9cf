package infrastructure

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolExecutesAllTasks(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Start()

	var counter int64
	for i := 0; i < 100; i++ {
		err := pool.Submit(func() error {
			atomic.AddInt64(&counter, 1)
			return nil
		})
		assert.NoError(t, err)
	}
	pool.Wait()

	assert.Equal(t, int64(100), atomic.LoadInt64(&counter))
}

func TestWorkerPoolCollectsErrors(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()

	taskErr := errors.New("task failed")
	_ = pool.Submit(func() error { return taskErr })
	pool.Wait()

	select {
	case err := <-pool.Errors():
		assert.Equal(t, taskErr, err)
	default:
		t.Fatal("expected an error on the errors channel")
	}
}

func TestWorkerPoolRejectsAfterStop(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Start()
	pool.Stop()

	err := pool.Submit(func() error { return nil })
	assert.Error(t, err)
}
