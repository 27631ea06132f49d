package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/imagestore/internal/auth"
	"github.com/vbonduro/imagestore/internal/domain"
	"github.com/vbonduro/imagestore/internal/idgen"
	"github.com/vbonduro/imagestore/internal/imagecodec"
	"github.com/vbonduro/imagestore/internal/kvstore"
)

type ImageService struct {
	store  kvstore.Store
	ids    idgen.Generator
	logger *slog.Logger
}

func NewImageService(store kvstore.Store, ids idgen.Generator, logger *slog.Logger) *ImageService {
	return &ImageService{
		store:  store,
		ids:    ids,
		logger: logger,
	}
}

// CreateImage validates payload, assigns it a new id and persists it.
func (s *ImageService) CreateImage(ctx context.Context, payload string) (string, error) {
	if err := imagecodec.Validate(payload); err != nil {
		return "", err
	}

	id, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("failed to generate image id: %w", err)
	}

	if _, err := s.put(ctx, id, payload); err != nil {
		return "", err
	}

	logger := s.logger
	if session, ok := auth.SessionFrom(ctx); ok {
		logger = logger.With("user_id", session.UserID)
	}
	logger.Info("image created", "image_id", id, "subtype", imagecodec.Subtype(payload), "bytes", len(payload))
	return id, nil
}

// GetImage returns the stored record for id.
func (s *ImageService) GetImage(ctx context.Context, id, sizeHint string) (*domain.Image, error) {
	return s.Resolve(ctx, id, sizeHint)
}

// GetImageBinary returns the decoded bytes of the stored data-URI for id.
func (s *ImageService) GetImageBinary(ctx context.Context, id, sizeHint string) ([]byte, error) {
	img, err := s.Resolve(ctx, id, sizeHint)
	if err != nil {
		return nil, err
	}

	data, err := imagecodec.Decode(img.Image)
	if err != nil {
		s.logger.Error("stored image is not decodable", "image_id", id, "error", err)
		return nil, err
	}
	return data, nil
}

// Resolve picks the representation of id matching sizeHint. Only one
// representation is ever stored, so the hint does not affect the result.
func (s *ImageService) Resolve(ctx context.Context, id, sizeHint string) (*domain.Image, error) {
	if sizeHint != "" {
		s.logger.Debug("size hint ignored", "image_id", id, "size", sizeHint)
	}

	payload, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Image{ID: id, Image: payload}, nil
}

func (s *ImageService) put(ctx context.Context, id, payload string) (string, error) {
	if err := s.store.Put(ctx, id, payload); err != nil {
		s.logger.Error("failed to store image", "image_id", id, "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return id, nil
}

func (s *ImageService) get(ctx context.Context, id string) (string, error) {
	payload, err := s.store.Get(ctx, id)
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", fmt.Errorf("image %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		s.logger.Error("failed to load image", "image_id", id, "error", err)
		return "", fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return payload, nil
}
