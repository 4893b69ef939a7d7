package app

import (
	"context"
	"fmt"
	"io"

	"resale/pkg/aws"
	"resale/pkg/httperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UploadFileHandler struct{}

func NewUploadFileHandler() *UploadFileHandler {
	return &UploadFileHandler{}
}

type UploadFileRequest struct {
	Kind string `query:"kind"`
}

type UploadFileResponse struct {
	Key string `json:"key"`
	URI string `json:"uri"`
}

// Handle uploads a multipart image to object storage and returns its public
// URI. Clients attach the URI to listings, profiles or identity proofs.
func (h *UploadFileHandler) Handle(ctx context.Context, req *UploadFileRequest) (*UploadFileResponse, error) {
	fiberCtx := ctx.Value("fiber")
	if fiberCtx == nil {
		return nil, httperror.InternalServerError("file.upload.no_context", httperror.MsgSomethingWentWrong, nil)
	}

	c, ok := fiberCtx.(*fiber.Ctx)
	if !ok {
		return nil, httperror.InternalServerError("file.upload.invalid_context", httperror.MsgSomethingWentWrong, nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, httperror.BadRequest("file.upload.missing_file", "Image file is required (use 'image' field)", nil)
	}

	const maxFileSize = 5 * 1024 * 1024
	if file.Size > maxFileSize {
		return nil, httperror.BadRequest("file.upload.file_too_large", "File size must not exceed 5MB",
			fiber.Map{
				"size_mb": float64(file.Size) / 1024 / 1024,
				"max_mb":  5,
			})
	}

	contentType := file.Header.Get("Content-Type")

	allowedTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}
	if !allowedTypes[contentType] {
		return nil, httperror.BadRequest("file.upload.invalid_content_type", "Only PNG, JPEG/JPG images are allowed",
			fiber.Map{
				"received": contentType,
				"allowed":  []string{"image/png", "image/jpeg", "image/jpg"},
			})
	}

	fileReader, err := file.Open()
	if err != nil {
		return nil, httperror.InternalServerError("file.upload.open_failed", httperror.MsgSomethingWentWrong, nil)
	}
	defer fileReader.Close()

	fileBytes, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, httperror.InternalServerError("file.upload.read_failed", httperror.MsgSomethingWentWrong, nil)
	}

	kind := req.Kind
	if kind == "" {
		kind = "uploads"
	}
	key := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), extensionFor(contentType))

	bucket := aws.NewBucket()
	if err := bucket.Upload(key, fileBytes); err != nil {
		return nil, httperror.InternalServerError("file.upload.store_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &UploadFileResponse{Key: key, URI: bucket.PublicURL(key)}, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	default:
		return ".jpg"
	}
}

