package aws

import (
	"fmt"
	"time"

	"resale/pkg/config"

	"github.com/gofiber/storage/s3/v2"
)

var appConfig = config.Read()

// Bucket wraps the object store holding listing images and identity proofs.
type Bucket struct {
	storage  *s3.Storage
	name     string
	endpoint string
	region   string
}

func NewBucket() *Bucket {
	storage := s3.New(s3.Config{
		Endpoint: appConfig.AWSEndpoint,
		Bucket:   appConfig.AWSBucket,
		Region:   appConfig.AWSDefaultRegion,
		Credentials: s3.Credentials{
			AccessKey:       appConfig.AWSAccessKey,
			SecretAccessKey: appConfig.AWSSecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: time.Second * 10,
		Reset:          false,
	})

	return &Bucket{
		storage:  storage,
		name:     appConfig.AWSBucket,
		endpoint: appConfig.AWSEndpoint,
		region:   appConfig.AWSDefaultRegion,
	}
}

// Upload stores an object under key. Referenced objects are kept effectively
// forever; the TTL only bounds orphaned uploads.
func (b *Bucket) Upload(key string, data []byte) error {
	return b.storage.Set(key, data, time.Hour*24*365)
}

func (b *Bucket) Download(key string) ([]byte, error) {
	return b.storage.Get(key)
}

func (b *Bucket) Delete(key string) error {
	return b.storage.Delete(key)
}

// PublicURL resolves a stored key to the URL clients embed in listings. A
// custom endpoint (minio and friends) wins over the regional AWS form.
func (b *Bucket) PublicURL(key string) string {
	if b.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", b.endpoint, b.name, key)
	}
	if b.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.name, b.region, key)
	}
	return key
}
