// Package blobstore issues short-lived signed upload grants. The client
// PUTs file bytes directly to the upload URL; this process never proxies
// image payloads.
package blobstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/communityhub-backend/internal/config"
)

// ErrUnsupportedContentType is returned for content types outside the
// allowed image set.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// extByContentType maps the accepted image content types to file
// extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Grant is a signed permission to upload a single file.
type Grant struct {
	FileName  string
	UploadURL string
	PublicURL string
	ExpiresAt time.Time
}

// Signer creates and verifies HMAC-SHA256 upload grants.
type Signer struct {
	secret        []byte
	uploadBaseURL string
	publicBaseURL string
	ttl           time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewSigner creates a grant signer from config.
func NewSigner(cfg config.BlobConfig) *Signer {
	return &Signer{
		secret:        []byte(cfg.SigningSecret),
		uploadBaseURL: cfg.UploadBaseURL,
		publicBaseURL: cfg.PublicBaseURL,
		ttl:           cfg.GrantTTL,
		now:           time.Now,
	}
}

// AuthorizeUpload issues a grant for one file of the given content type.
// The file name is a fresh UUID plus the type's extension, so grants
// never collide and the public URL is stable once the upload lands.
func (s *Signer) AuthorizeUpload(contentType string) (*Grant, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}

	fileName := uuid.New().String() + ext
	expiresAt := s.now().Add(s.ttl)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expiresAt.Unix(), 10))
	q.Set("signature", s.sign(fileName, expiresAt.Unix()))

	return &Grant{
		FileName:  fileName,
		UploadURL: s.uploadBaseURL + "/" + fileName + "?" + q.Encode(),
		PublicURL: s.publicBaseURL + "/" + fileName,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks a grant signature and its expiry against the current
// time. Used by the upload endpoint that receives the PUT.
func (s *Signer) Verify(fileName string, expires int64, signature string) bool {
	if s.now().Unix() > expires {
		return false
	}
	want := s.sign(fileName, expires)
	return hmac.Equal([]byte(want), []byte(signature))
}

func (s *Signer) sign(fileName string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%d", fileName, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
