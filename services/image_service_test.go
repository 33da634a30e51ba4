package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

func TestImageService_PassthroughWithoutCloud(t *testing.T) {
	s, err := NewImageService("", "", "", 800, quietLogger())
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.Equal(t, "https://cdn.example/a.jpg", s.FetchURL("https://cdn.example/a.jpg", 800))

	p := models.Product{FeaturedImage: &models.Image{URL: "https://cdn.example/a.jpg"}}
	s.RewriteProduct(&p)
	assert.Equal(t, "https://cdn.example/a.jpg", p.FeaturedImage.URL)
}

func TestImageService_RewritesWithoutTouchingSource(t *testing.T) {
	s, err := NewImageService("demo", "key", "secret", 640, quietLogger())
	require.NoError(t, err)
	require.True(t, s.Enabled())

	variants := []models.Variant{{ID: "v1", Image: &models.Image{URL: "https://cdn.example/v.jpg"}}}
	featured := &models.Image{URL: "https://cdn.example/a.jpg"}
	p := models.Product{FeaturedImage: featured, Variants: variants, Images: []models.Image{{URL: "https://cdn.example/b.jpg"}}}

	s.RewriteProduct(&p)

	assert.Contains(t, p.FeaturedImage.URL, "/demo/image/fetch/")
	assert.Contains(t, p.FeaturedImage.URL, "w_640")
	assert.Contains(t, p.Images[0].URL, "image/fetch")
	assert.Contains(t, p.Variants[0].Image.URL, "image/fetch")

	assert.Equal(t, "https://cdn.example/a.jpg", featured.URL)
	assert.Equal(t, "https://cdn.example/v.jpg", variants[0].Image.URL)
}

func TestImageService_SkipsRelativeURLs(t *testing.T) {
	s, err := NewImageService("demo", "key", "secret", 640, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "/placeholder.png", s.FetchURL("/placeholder.png", 640))
}
