package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"host only", "https://cdn.example.com", "exports/t1.json", "https://cdn.example.com/exports/t1.json"},
		{"base with trailing slash", "https://cdn.example.com/", "exports/t1.json", "https://cdn.example.com/exports/t1.json"},
		{"base path", "https://cdn.example.com/public", "exports/t1.json", "https://cdn.example.com/public/exports/t1.json"},
		{"leading slash in key", "https://cdn.example.com/public/", "/exports/t1.json", "https://cdn.example.com/public/exports/t1.json"},
		{"empty key", "https://cdn.example.com", "", ""},
		{"empty base", "", "exports/t1.json", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.base, tt.key))
		})
	}
}

func TestNewCloudflareR2Uploader_RequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrInvalidR2Config)
}

func TestNewCloudflareR2Uploader_BuildsClient(t *testing.T) {
	uploader, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "standings",
		PublicBaseURL:   "https://pub.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pub.example.com/exports/7.json", uploader.GetPublicURL("exports/7.json"))
}
