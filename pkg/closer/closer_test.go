package closer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_ClosesInReverseOrder(t *testing.T) {
	c := NewCloser(0)
	var order []string

	c.AddSimple("postgres", func() error { order = append(order, "postgres"); return nil })
	c.AddSimple("redis", func() error { order = append(order, "redis"); return nil })
	c.Add("http", func(context.Context) error { order = append(order, "http"); return nil })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"http", "redis", "postgres"}, order)
}

func TestCloser_CollectsErrors(t *testing.T) {
	c := NewCloser(0)
	c.AddSimple("kafka", func() error { return errors.New("writer closed") })
	c.AddSimple("redis", func() error { return nil })

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka: writer closed")
}

func TestCloser_CloseOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddSimple("pool", func() error { calls++; return nil })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcedAfterTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)
	forced := make(chan struct{}, 1)

	c.Add("slow-first", func(ctx context.Context) error {
		forced <- struct{}{}
		return nil
	})
	c.Add("stuck", func(context.Context) error {
		time.Sleep(300 * time.Millisecond)
		return errors.New("still busy")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")
	assert.Contains(t, err.Error(), "[FORCED] stuck")

	select {
	case <-forced:
	case <-time.After(time.Second):
		t.Fatal("remaining func was not closed")
	}
}
