package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	appconfig "shutterbay-backend/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// PresignResult is the response for a presigned direct-to-S3 upload.
type PresignResult struct {
	UploadURL string `json:"upload_url"`
	Method    string `json:"method"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int64  `json:"expires_in"`
}

// UploadService handles product image assets. Two paths, both optional by
// configuration: multipart uploads through Cloudinary, and presigned PUT URLs
// for direct browser-to-S3 uploads.
type UploadService struct {
	cld *cloudinary.Cloudinary

	s3Client        *s3.Client
	bucket          string
	s3PublicBaseURL string
}

func NewUploadService(cfg appconfig.Config) (*UploadService, error) {
	s := &UploadService{
		bucket:          cfg.S3Bucket,
		s3PublicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}

	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init: %w", err)
		}
		s.cld = cld
	}

	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		s.s3Client = s3.NewFromConfig(awsCfg)
	}

	return s, nil
}

// UploadImage pushes a multipart image to Cloudinary and returns its URL.
func (s *UploadService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, *ServiceError) {
	if s.cld == nil {
		return "", &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Image uploads are not configured"}
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", &ServiceError{StatusCode: http.StatusBadRequest, Message: "Unsupported image type"}
	}

	publicID := "products/" + uuid.New().String()
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		zap.L().Error("Cloudinary upload failed", zap.String("filename", header.Filename), zap.Error(err))
		return "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to upload image"}
	}
	return resp.SecureURL, nil
}

// PresignUpload returns a presigned PUT URL for a direct S3 upload.
func (s *UploadService) PresignUpload(ctx context.Context, filename, contentType string) (*PresignResult, *ServiceError) {
	if s.s3Client == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Presigned uploads are not configured"}
	}
	if !allowedImageTypes[contentType] {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Unsupported image type"}
	}

	key := "products/" + uuid.New().String() + strings.ToLower(path.Ext(filename))
	expiry := 15 * time.Minute

	presigner := s3.NewPresignClient(s.s3Client)
	presigned, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		zap.L().Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate upload URL"}
	}

	return &PresignResult{
		UploadURL: presigned.URL,
		Method:    http.MethodPut,
		Key:       key,
		PublicURL: s.s3PublicBaseURL + "/" + key,
		ExpiresIn: int64(expiry.Seconds()),
	}, nil
}

// DeleteImage removes an uploaded asset. Assets outside our stores (external
// URLs pasted by admins) are ignored.
func (s *UploadService) DeleteImage(ctx context.Context, url string) error {
	if s.s3Client != nil && s.s3PublicBaseURL != "" && strings.HasPrefix(url, s.s3PublicBaseURL+"/") {
		key := strings.TrimPrefix(url, s.s3PublicBaseURL+"/")
		_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return err
	}

	if s.cld != nil && strings.Contains(url, "res.cloudinary.com") {
		publicID := cloudinaryPublicID(url)
		if publicID == "" {
			return nil
		}
		_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
		return err
	}
	return nil
}

// cloudinaryPublicID recovers the public id from a delivery URL, e.g.
// .../upload/v123/products/abc.jpg -> products/abc
func cloudinaryPublicID(url string) string {
	parts := strings.Split(url, "/upload/")
	if len(parts) != 2 {
		return ""
	}
	rest := parts[1]
	if idx := strings.Index(rest, "/"); idx >= 0 && strings.HasPrefix(rest, "v") {
		rest = rest[idx+1:]
	}
	return strings.TrimSuffix(rest, path.Ext(rest))
}
