package infrastructure

import (
	"testing"

	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestGetExtensionFromMIME(t *testing.T) {
	tests := []struct {
		mime    string
		want    string
		wantErr error
	}{
		{"image/jpeg", "jpg", nil},
		{"image/jpg", "jpg", nil},
		{"image/png", "png", nil},
		{"image/webp", "webp", nil},
		{"image/gif", "gif", nil},
		{"application/pdf", "bin", e.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			got, err := GetExtensionFromMIME(tt.mime)
			assert.Equal(t, tt.want, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
