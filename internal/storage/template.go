// Package storage loads invoice templates and persists rendered invoices.
package storage

import (
	"context"
	"os"

	"github.com/flexprice/propbill/internal/cache"
	"github.com/flexprice/propbill/internal/config"
	ierr "github.com/flexprice/propbill/internal/errors"
	"github.com/flexprice/propbill/internal/logger"
	"github.com/flexprice/propbill/internal/s3"
	"github.com/flexprice/propbill/internal/types"
)

// TemplateSource returns the bytes of the invoice template
type TemplateSource interface {
	Load(ctx context.Context) ([]byte, error)
}

// NewTemplateSource builds the configured source, cached for the template TTL
func NewTemplateSource(cfg *config.Configuration, s3Service s3.Service, c cache.Cache, log *logger.Logger) (TemplateSource, error) {
	var src TemplateSource
	switch cfg.Template.Source {
	case types.TemplateSourceFile:
		src = &fileTemplateSource{path: cfg.Template.Path}
	case types.TemplateSourceS3:
		if s3Service == nil {
			return nil, ierr.NewError("s3 template source without s3 service").
				WithHint("Enable s3 to load the invoice template from a bucket").
				Mark(ierr.ErrValidation)
		}
		src = &s3TemplateSource{key: cfg.Template.Path, s3: s3Service}
	default:
		return nil, ierr.NewErrorf("unknown template source %q", cfg.Template.Source).
			WithHint("Template source must be file or s3").
			Mark(ierr.ErrValidation)
	}

	if c == nil || cfg.Template.CacheTTL < 0 {
		return src, nil
	}
	return &cachedTemplateSource{
		next:   src,
		cache:  c,
		key:    cache.GenerateKey(cache.PrefixTemplate, cfg.Template.Source, cfg.Template.Path),
		logger: log,
	}, nil
}

type fileTemplateSource struct {
	path string
}

func (s *fileTemplateSource) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invoice template %s could not be read", s.path).
			WithReportableDetails(map[string]any{
				"path": s.path,
			}).
			Mark(ierr.ErrTemplate)
	}
	return data, nil
}

type s3TemplateSource struct {
	key string
	s3  s3.Service
}

func (s *s3TemplateSource) Load(ctx context.Context) ([]byte, error) {
	data, err := s.s3.GetDocument(ctx, s.key, s3.DocumentTypeTemplate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invoice template %s could not be downloaded", s.key).
			Mark(ierr.ErrTemplate)
	}
	return data, nil
}

// cachedTemplateSource keeps the last loaded template. Failed loads are not cached.
type cachedTemplateSource struct {
	next   TemplateSource
	cache  cache.Cache
	key    string
	logger *logger.Logger
}

func (s *cachedTemplateSource) Load(ctx context.Context) ([]byte, error) {
	span := cache.StartCacheSpan(ctx, "template", "load", map[string]interface{}{"key": s.key})

	if v, ok := s.cache.Get(ctx, s.key); ok {
		if data, ok := v.([]byte); ok {
			cache.FinishSpan(span, true)
			return data, nil
		}
	}
	cache.FinishSpan(span, false)

	data, err := s.next.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("loaded invoice template", "key", s.key, "bytes", len(data))
	s.cache.Set(ctx, s.key, data, 0)
	return data, nil
}
