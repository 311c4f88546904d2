package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/communityhub-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/communityhub-backend/internal/domain"
	"github.com/heartmarshall/communityhub-backend/pkg/ctxutil"
)

// AuthorizeUpload issues a short-lived signed upload grant for one
// image. Requires authentication.
func (s *Service) AuthorizeUpload(ctx context.Context, contentType string) (*blobstore.Grant, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	grant, err := s.signer.AuthorizeUpload(contentType)
	if err != nil {
		if errors.Is(err, blobstore.ErrUnsupportedContentType) {
			return nil, domain.NewValidationError("contentType", "unsupported content type")
		}
		return nil, fmt.Errorf("authorize upload: %w", err)
	}

	s.log.InfoContext(ctx, "upload authorized", "file", grant.FileName, "user_id", userID)
	return grant, nil
}
