package services

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/sirupsen/logrus"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// ImageService rewrites product image URLs into Cloudinary fetch URLs so the
// storefront gets resized, format-negotiated images. Without credentials it
// returns URLs unchanged.
type ImageService struct {
	cld   *cloudinary.Cloudinary
	width int
	log   *logrus.Entry
}

func NewImageService(cloudName, apiKey, apiSecret string, width int, log *logrus.Logger) (*ImageService, error) {
	s := &ImageService{width: width, log: log.WithField("component", "images")}
	if cloudName == "" {
		log.Warn("⚠️  CLOUDINARY_CLOUD_NAME not set, serving original image URLs")
		return s, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	s.cld = cld
	return s, nil
}

func (s *ImageService) Enabled() bool { return s != nil && s.cld != nil }

// FetchURL returns the delivery URL for a remote image limited to width
// pixels. The original URL is returned on any failure.
func (s *ImageService) FetchURL(src string, width int) string {
	if !s.Enabled() || src == "" || !strings.HasPrefix(src, "http") {
		return src
	}
	img, err := s.cld.Image(src)
	if err != nil {
		s.log.WithError(err).Debug("[images] could not build asset")
		return src
	}
	img.DeliveryType = api.Fetch
	img.Transformation = fmt.Sprintf("c_limit,w_%d/f_auto/q_auto", width)
	url, err := img.String()
	if err != nil {
		s.log.WithError(err).Debug("[images] could not render url")
		return src
	}
	return url
}

// RewriteProduct replaces the product's image URLs in place.
func (s *ImageService) RewriteProduct(p *models.Product) {
	if !s.Enabled() || p == nil {
		return
	}
	if p.FeaturedImage != nil {
		img := *p.FeaturedImage
		img.URL = s.FetchURL(img.URL, s.width)
		p.FeaturedImage = &img
	}
	if p.Images != nil {
		images := make([]models.Image, len(p.Images))
		for i, img := range p.Images {
			img.URL = s.FetchURL(img.URL, s.width)
			images[i] = img
		}
		p.Images = images
	}
	// variants share their backing array with the caller's copy
	variants := append([]models.Variant(nil), p.Variants...)
	for i := range variants {
		if v := variants[i].Image; v != nil {
			img := *v
			img.URL = s.FetchURL(img.URL, s.width)
			variants[i].Image = &img
		}
	}
	p.Variants = variants
}

func (s *ImageService) RewriteProducts(products []models.Product) {
	if !s.Enabled() {
		return
	}
	for i := range products {
		s.RewriteProduct(&products[i])
	}
}
