package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rollouthq/application/ports"
	pkgerrors "rollouthq/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultPresignExpiry is the lifetime of every signed URL
	DefaultPresignExpiry = 900 * time.Second

	defaultContentType = "application/octet-stream"
	defaultFilename    = "file"

	ActionGet = "get"

	MsgKeyRequiredForGet = "key required for GET presign"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.\-]`)

// PresignRequest is the body of a presign call
type PresignRequest struct {
	Action      string `json:"action"`
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	Hash        string `json:"hash"`
	ContentType string `json:"contentType"`
}

// PresignResult is returned to the client
type PresignResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// PresignService issues upload and download URLs for the media bucket
type PresignService struct {
	presigner ports.Presigner
	expiry    time.Duration
	logger    *zap.Logger
}

// NewPresignService creates a presign service. A non-positive expiry uses
// DefaultPresignExpiry.
func NewPresignService(presigner ports.Presigner, expiry time.Duration, logger *zap.Logger) *PresignService {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}
	return &PresignService{presigner: presigner, expiry: expiry, logger: logger}
}

// Presign signs a PUT or GET for userID. GET URLs are issued without
// checking that the object exists or belongs to the caller.
func (s *PresignService) Presign(ctx context.Context, userID string, req PresignRequest) (*PresignResult, error) {
	if userID == "" {
		return nil, pkgerrors.NewUnauthorizedError("")
	}

	// Anything other than "get" signs an upload.
	if strings.EqualFold(req.Action, ActionGet) {
		if req.Key == "" {
			return nil, pkgerrors.NewValidationError(MsgKeyRequiredForGet)
		}
		url, err := s.presigner.PresignGet(ctx, req.Key, s.expiry)
		if err != nil {
			return nil, pkgerrors.NewExternalError("s3", err)
		}
		s.logger.Debug("Presigned download", zap.String("key", req.Key), zap.String("userID", userID))
		return &PresignResult{URL: url, Key: req.Key}, nil
	}

	key := UploadKey(userID, req.Key, req.Hash, req.Filename)
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	url, err := s.presigner.PresignPut(ctx, key, contentType, s.expiry)
	if err != nil {
		return nil, pkgerrors.NewExternalError("s3", err)
	}
	s.logger.Debug("Presigned upload",
		zap.String("key", key),
		zap.String("contentType", contentType),
		zap.String("userID", userID),
	)
	return &PresignResult{URL: url, Key: key}, nil
}

// UploadKey picks the object key for an upload. An explicit key wins; a
// content hash makes the key deterministic so repeated uploads collapse.
func UploadKey(userID, key, hash, filename string) string {
	if key != "" {
		return key
	}
	safe := SafeName(filename)
	if hash != "" {
		return fmt.Sprintf("uploads/%s/%s_%s", userID, hash, safe)
	}
	return fmt.Sprintf("uploads/%s/%s_%s", userID, uuid.New().String(), safe)
}

// SafeName replaces every character outside [a-zA-Z0-9_.-] with '_'
func SafeName(filename string) string {
	if filename == "" {
		filename = defaultFilename
	}
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}
