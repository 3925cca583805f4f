package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/jxeer/Harmonia/config"
	"github.com/nfnt/resize"
)

const (
	// MaxUploadSize caps any single uploaded file at 10 MB.
	MaxUploadSize = 10 * 1024 * 1024

	profileImageSize = 400
	thumbnailWidth   = 161
	recordThumbWidth = 200
)

// MediaService handles object-storage uploads for profile images and
// medical record documents.
type MediaService interface {
	UploadFile(fileHeader *multipart.FileHeader, keyPrefix string) (string, error)
	UploadProfileImage(fileHeader *multipart.FileHeader, userID string) (string, string, error)
	UploadRecordFile(fileHeader *multipart.FileHeader, patientID string) (string, error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func (s *mediaService) createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(s.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (s *mediaService) putObject(client *s3.Client, key, contentType string, body io.Reader) (string, error) {
	_, err := client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.Config.AwsBucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Config.AwsBucket, s.Config.AwsRegion, key), nil
}

// UploadFile streams a single file into the bucket under keyPrefix and
// returns its public URL.
func (s *mediaService) UploadFile(fileHeader *multipart.FileHeader, keyPrefix string) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", fmt.Errorf("file size exceeds limit of %d bytes", MaxUploadSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	client, err := s.createS3Client()
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.New().String(), ext)
	return s.putObject(client, key, fileHeader.Header.Get("Content-Type"), file)
}

// UploadProfileImage decodes the uploaded image, uploads a square
// profile rendition plus a small thumbnail, and returns both URLs.
func (s *mediaService) UploadProfileImage(fileHeader *multipart.FileHeader, userID string) (string, string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", "", fmt.Errorf("file size exceeds limit of %d bytes", MaxUploadSize)
	}
	if !isImageContentType(fileHeader.Header.Get("Content-Type")) {
		return "", "", fmt.Errorf("invalid file type: %s", fileHeader.Header.Get("Content-Type"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		log.Printf("Error decoding image: %v", err)
		return "", "", fmt.Errorf("error decoding image: %v", err)
	}

	profileImg := imaging.Fill(img, profileImageSize, profileImageSize, imaging.Center, imaging.Lanczos)
	thumbnailImg := imaging.Resize(img, thumbnailWidth, thumbnailWidth, imaging.Lanczos)

	client, err := s.createS3Client()
	if err != nil {
		return "", "", err
	}

	imageURL, err := s.putEncodedJPEG(client, fmt.Sprintf("profile/%s_%s.jpg", userID, uuid.New().String()), profileImg)
	if err != nil {
		return "", "", err
	}
	thumbnailURL, err := s.putEncodedJPEG(client, fmt.Sprintf("profile/thumb_%s_%s.jpg", userID, uuid.New().String()), thumbnailImg)
	if err != nil {
		return "", "", err
	}
	return imageURL, thumbnailURL, nil
}

// UploadRecordFile uploads a medical record document. Image documents
// also get a thumbnail alongside, but only the document URL is returned.
func (s *mediaService) UploadRecordFile(fileHeader *multipart.FileHeader, patientID string) (string, error) {
	if fileHeader.Size > MaxUploadSize {
		return "", fmt.Errorf("file size exceeds limit of %d bytes", MaxUploadSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	client, err := s.createS3Client()
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(fileHeader.Filename)
	key := fmt.Sprintf("records/%s/%s%s", patientID, uuid.New().String(), ext)

	contentType := fileHeader.Header.Get("Content-Type")
	if !isImageContentType(contentType) {
		return s.putObject(client, key, contentType, file)
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %v", err)
	}

	fileURL, err := s.putObject(client, key, contentType, bytes.NewReader(content))
	if err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		log.Printf("Error decoding record image for thumbnail: %v", err)
		return fileURL, nil
	}
	thumb := resize.Resize(recordThumbWidth, 0, img, resize.Lanczos3)
	thumbKey := fmt.Sprintf("records/%s/thumb_%s", patientID, filepath.Base(key))
	if _, err := s.putEncodedJPEG(client, strings.TrimSuffix(thumbKey, ext)+".jpg", thumb); err != nil {
		log.Printf("Error uploading record thumbnail: %v", err)
	}
	return fileURL, nil
}

func (s *mediaService) putEncodedJPEG(client *s3.Client, key string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("error encoding thumbnail to JPEG: %v", err)
	}
	return s.putObject(client, key, "image/jpeg", &buf)
}

func isImageContentType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/gif":
		return true
	}
	return false
}
