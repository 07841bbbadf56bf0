package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/flexprice/propbill/internal/config"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/s3"
	"github.com/flexprice/propbill/internal/types"
)

// DocumentSink persists rendered invoices produced by batch runs.
// Put returns where the document was written, or "" when it was not kept.
type DocumentSink interface {
	Put(ctx context.Context, fileName string, data []byte) (string, error)
}

func NewDocumentSink(cfg *config.Configuration, s3Service s3.Service, log *logger.Logger) (DocumentSink, error) {
	switch cfg.Output.Mode {
	case types.OutputModeNone, "":
		return noopSink{}, nil
	case types.OutputModeLocal:
		return &localSink{dir: cfg.Output.Dir, logger: log}, nil
	case types.OutputModeS3:
		if s3Service == nil {
			return nil, ierr.NewError("s3 output without s3 service").
				WithHint("Enable s3 to store invoices in a bucket").
				Mark(ierr.ErrValidation)
		}
		return &s3Sink{s3: s3Service, logger: log}, nil
	default:
		return nil, ierr.NewErrorf("unknown output mode %q", cfg.Output.Mode).
			WithHint("Output mode must be none, local or s3").
			Mark(ierr.ErrValidation)
	}
}

type noopSink struct{}

func (noopSink) Put(context.Context, string, []byte) (string, error) {
	return "", nil
}

type localSink struct {
	dir    string
	logger *logger.Logger
}

// Put overwrites any earlier file of the same name, matching regeneration semantics
func (s *localSink) Put(_ context.Context, fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", ierr.WithError(err).
			WithHintf("Output directory %s could not be created", s.dir).
			Mark(ierr.ErrStorage)
	}

	target := filepath.Join(s.dir, filepath.Base(fileName))
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", ierr.WithError(err).
			WithHintf("Invoice %s could not be written", fileName).
			Mark(ierr.ErrStorage)
	}

	s.logger.Debugw("wrote invoice document", "path", target, "bytes", len(data))
	return target, nil
}

type s3Sink struct {
	s3     s3.Service
	logger *logger.Logger
}

func (s *s3Sink) Put(ctx context.Context, fileName string, data []byte) (string, error) {
	loc, err := s.s3.UploadDocument(ctx, s3.NewDocxDocument(fileName, data, s3.DocumentTypeInvoice))
	if err != nil {
		return "", err
	}
	s.logger.Debugw("uploaded invoice document", "location", loc, "bytes", len(data))
	return loc, nil
}
