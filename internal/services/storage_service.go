// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/easyfix/electrox-backend/internal/config"
)

// BlobStore is the storage dependency of the product and catalog
// services. Products persist opaque storage refs; the store turns a
// ref into a browser-reachable URL and reclaims blobs when a product
// or an image is removed.
type BlobStore interface {
	ResolveURL(ref string) string
	Delete(ref string) error
}

type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadSlot struct {
	UploadURL  string `json:"upload_url"`
	StorageRef string `json:"storage_ref"`
	ExpiresIn  int    `json:"expires_in"`
}

type UploadResult struct {
	StorageRef string `json:"storage_ref"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mime_type"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// CreateUploadSlot reserves a storage ref and returns a presigned PUT
// URL for it. The client uploads the image body directly and then
// passes the ref back when creating or updating a product.
func (s *StorageService) CreateUploadSlot(contentType string) (*UploadSlot, error) {
	ref := s.generateRef("products", extFromContentType(contentType))

	if s.s3Client == nil {
		// Local development fallback: point the client at the dev
		// upload endpoint instead of S3.
		return &UploadSlot{
			UploadURL:  fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, ref),
			StorageRef: ref,
			ExpiresIn:  s.config.AWS.UploadURLExpiry * 60,
		}, nil
	}

	req, _ := s.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      aws.String(s.config.AWS.S3Bucket),
		Key:         aws.String(ref),
		ContentType: aws.String(contentType),
	})

	expiry := time.Duration(s.config.AWS.UploadURLExpiry) * time.Minute
	url, err := req.Presign(expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload URL: %w", err)
	}

	return &UploadSlot{
		UploadURL:  url,
		StorageRef: ref,
		ExpiresIn:  s.config.AWS.UploadURLExpiry * 60,
	}, nil
}

// UploadFile is the server-side upload path for clients that cannot do
// a direct presigned PUT.
func (s *StorageService) UploadFile(file multipart.File, header *multipart.FileHeader, options UploadOptions) (*UploadResult, error) {
	// Validate file size
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, options.MaxSize)
	}

	// Validate file type
	if len(options.AllowedTypes) > 0 {
		fileExt := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if fileExt == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("file type %s is not allowed", fileExt)
		}
	}

	if err := s.ValidateImage(file); err != nil {
		return nil, err
	}

	ref := s.generateRef(options.Folder, filepath.Ext(header.Filename))

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		if err := s.putObject(fileBytes, ref, contentType); err != nil {
			return nil, err
		}
	}

	return &UploadResult{
		StorageRef: ref,
		URL:        s.ResolveURL(ref),
		Size:       int64(len(fileBytes)),
		MimeType:   contentType,
	}, nil
}

func (s *StorageService) putObject(fileBytes []byte, key, contentType string) error {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

// ResolveURL maps a stored ref to the URL shoppers load.
func (s *StorageService) ResolveURL(ref string) string {
	if ref == "" {
		return ""
	}
	if s.s3Client == nil {
		return fmt.Sprintf("http://localhost:%s/uploads/%s", s.config.Server.Port, ref)
	}
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, ref)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, ref)
}

func (s *StorageService) Delete(ref string) error {
	if s.s3Client == nil {
		// Local development - nothing to reclaim
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (s *StorageService) GetDefaultUploadOptions(category string) UploadOptions {
	switch category {
	case "products":
		return UploadOptions{
			Folder:       "products",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		}
	case "avatars":
		return UploadOptions{
			Folder:       "avatars",
			MaxSize:      2 * 1024 * 1024, // 2MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png"},
		}
	default:
		return UploadOptions{
			Folder:       "general",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png"},
		}
	}
}

func (s *StorageService) generateRef(folder, ext string) string {
	id := uuid.New()
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder != "" {
		return fmt.Sprintf("%s/%s", folder, filename)
	}
	return filename
}

func extFromContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func (s *StorageService) ValidateImage(file multipart.File) error {
	// Read first few bytes to check file signature
	buffer := make([]byte, 512)
	_, err := file.Read(buffer)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Reset file pointer
	file.Seek(0, 0)

	if !isValidImageType(buffer) {
		return fmt.Errorf("invalid image file")
	}

	return nil
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	// WebP (RIFF....WEBP)
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
