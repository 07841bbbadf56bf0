package s3

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/flexprice/propbill/internal/config"
	ierr "github.com/flexprice/propbill/internal/errors"
)

var validDocumentTypes = []DocumentType{DocumentTypeInvoice, DocumentTypeTemplate}

type Service interface {
	UploadDocument(ctx context.Context, document *Document) (string, error)
	GetDocument(ctx context.Context, id string, docType DocumentType) ([]byte, error)
	Exists(ctx context.Context, id string, docType DocumentType) (bool, error)
}

// ObjectAPI is the subset of the S3 client the service uses
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type s3ServiceImpl struct {
	client ObjectAPI
	config *config.S3Config
}

// NewService returns nil when S3 is disabled
func NewService(cfg *config.Configuration) (Service, error) {
	if !cfg.S3.Enabled {
		return nil, nil
	}

	awsCfg, err := config.LoadAwsConfig(context.Background(), cfg.S3)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load aws config").
			Mark(ierr.ErrStorage)
	}

	return NewServiceWithClient(config.NewS3Client(awsCfg), &cfg.S3), nil
}

func NewServiceWithClient(client ObjectAPI, cfg *config.S3Config) Service {
	return &s3ServiceImpl{client: client, config: cfg}
}

func (s *s3ServiceImpl) getObjectKey(id string, docType DocumentType) (string, error) {
	switch docType {
	case DocumentTypeInvoice:
		if s.config.KeyPrefix != "" {
			return path.Join(s.config.KeyPrefix, id), nil
		}
		return id, nil
	case DocumentTypeTemplate:
		return id, nil
	default:
		return "", ierr.NewErrorf("invalid doc type: %s", docType).
			WithHintf("valid doc types are: %v", validDocumentTypes).
			Mark(ierr.ErrSystem)
	}
}

func (s *s3ServiceImpl) Exists(ctx context.Context, id string, docType DocumentType) (bool, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, ierr.WithError(err).
			WithHint("Failed to check if document exists").
			WithReportableDetails(map[string]any{
				"bucket": s.config.Bucket,
				"key":    key,
			}).
			Mark(ierr.ErrStorage)
	}
	return true, nil
}

// UploadDocument stores the document and returns its s3:// location
func (s *s3ServiceImpl) UploadDocument(ctx context.Context, document *Document) (string, error) {
	key, err := s.getObjectKey(document.ID, document.Type)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(document.Data),
		ContentType: aws.String(contentType(document.Kind)),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to upload document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(ierr.ErrStorage)
	}

	return "s3://" + s.config.Bucket + "/" + key, nil
}

func (s *s3ServiceImpl) GetDocument(ctx context.Context, id string, docType DocumentType) ([]byte, error) {
	key, err := s.getObjectKey(id, docType)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		marker := ierr.ErrStorage
		if isMissing(err) {
			marker = ierr.ErrNotFound
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get document").
			WithMessagef("bucket:%s, key:%s", s.config.Bucket, key).
			Mark(marker)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read document").
			Mark(ierr.ErrStorage)
	}
	return data, nil
}

func isMissing(err error) bool {
	var nsk *s3types.NoSuchKey
	var nf *s3types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
