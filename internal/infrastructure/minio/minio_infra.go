package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pinkcart/go-backend/internal/cfg"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/infrastructure"
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/e"
	"github.com/pinkcart/go-backend/pkg/jitter"
	"github.com/pinkcart/go-backend/pkg/logger"
)

const (
	cleanupAttempts = 3
	cleanupTimeout  = 30 * time.Second
)

// MinioInfrastructure управляет загрузкой и очисткой изображений в MinIO.
type MinioInfrastructure struct {
	minioRepo         usecase.ImageRepository
	cfg               *cfg.MinIOCfg
	logger            logger.Logger
	shutdownCtx       context.Context
	wg                sync.WaitGroup
	uploadImagesLimit int
	cleanupBackoff    time.Duration
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	limit := cfg.UploadImagesLimit
	if limit <= 0 {
		limit = 1
	}

	return &MinioInfrastructure{
		minioRepo:         minioRepo,
		cfg:               cfg,
		logger:            logger,
		shutdownCtx:       shutdownCtx,
		uploadImagesLimit: limit,
		cleanupBackoff:    time.Second,
	}
}

type uploadResult struct {
	idx int
	key string
	err error
}

// UploadImages загружает изображения продукта в MinIO параллельно с ограничением одновременных операций.
// Ключи и адреса возвращаются в порядке входных изображений: первое остаётся главным.
// При первой ошибке остальные загрузки отменяются, а уже загруженные файлы удаляются в фоне.
func (m *MinioInfrastructure) UploadImages(ctx context.Context, req *usecase.UploadImagesReq) (*usecase.UploadImagesRes, error) {
	const op = "MinioInfrastructure.UploadImages"
	// Отмена остальных загрузок при первой ошибке
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan uploadResult, len(req.Images))
	sem := make(chan struct{}, m.uploadImagesLimit)

	for i, image := range req.Images {
		go func() {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				resCh <- uploadResult{idx: i, err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			key, err := m.uploadOne(ctx, req.Name, image)
			resCh <- uploadResult{idx: i, key: key, err: err}
		}()
	}

	keys := make([]string, len(req.Images))
	var firstErr error
	for range req.Images {
		res := <-resCh
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		keys[res.idx] = res.key
	}

	if firstErr != nil {
		uploaded := make([]string, 0, len(keys))
		for _, k := range keys {
			if k != "" {
				uploaded = append(uploaded, k)
			}
		}
		m.CleanupImages(uploaded)
		return nil, e.Wrap(op, firstErr)
	}

	urls := make([]string, len(keys))
	for i, k := range keys {
		urls[i] = domain.ImageURL(m.cfg.PublicURL, m.cfg.BucketName, k)
	}

	return usecase.NewUploadImagesRes(keys, urls), nil
}

func (m *MinioInfrastructure) uploadOne(ctx context.Context, prefix string, image usecase.ProductImage) (string, error) {
	ext, err := infrastructure.GetExtensionFromMIME(image.MimeType)
	if err != nil {
		return "", fmt.Errorf("invalid mime type %s for %s: %w", image.MimeType, image.Name, err)
	}

	imageID := uuid.NewString()
	objKey := fmt.Sprintf("%s/%s.%s", prefix, imageID, ext)
	size, mime := image.Size, image.MimeType
	newImage := domain.NewImage(imageID, m.cfg.BucketName, objKey, image.Data, &size, &mime)

	key, err := m.minioRepo.Upload(ctx, newImage)
	if err != nil {
		return "", fmt.Errorf("upload %s failed: %w", image.Name, err)
	}

	return key, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKeys(keys)
}

// cleanupUploadedKeys удаляет указанные объекты из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupUploadedKeys"
	m.logger.Infof("%s: cleaning up %d uploaded keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.minioRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if ctx.Err() != nil {
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key %s", op, key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(m.cleanupBackoff, 10*m.cleanupBackoff, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
