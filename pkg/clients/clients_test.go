package clients

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pinkcart/go-backend/internal/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})
	defer c.Close()

	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestPublicReadPolicy(t *testing.T) {
	var policy struct {
		Statement []struct {
			Effect   string
			Action   []string
			Resource []string
		}
	}

	require.NoError(t, json.Unmarshal([]byte(PublicReadPolicy("product-images")), &policy))
	require.Len(t, policy.Statement, 1)
	assert.Equal(t, "Allow", policy.Statement[0].Effect)
	assert.Equal(t, []string{"s3:GetObject"}, policy.Statement[0].Action)
	assert.Equal(t, []string{"arn:aws:s3:::product-images/*"}, policy.Statement[0].Resource)
}

func TestNewMinIOClient_BadEndpoint(t *testing.T) {
	_, err := NewMinIOClient(&cfg.MinIOCfg{MinioEndpoint: "http://bad endpoint"})
	assert.Error(t, err)
}

func TestRedisClient_WaitReady(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr(), DialTimeout: time.Second, Timeout: time.Second})
	defer c.Close()

	require.NoError(t, c.WaitReady(context.Background(), 3))

	addr := mr.Addr()
	mr.Close()
	err := c.WaitReady(context.Background(), 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestRedisClient_WaitReady_ContextCancelled(t *testing.T) {
	c := NewRedisClient(&cfg.RedisCfg{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, Timeout: 50 * time.Millisecond})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, c.WaitReady(ctx, 10))
}
