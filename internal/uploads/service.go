package uploads

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"clipvault/internal/catalog"
	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/services"
	"clipvault/internal/storage"
)

// Service coordinates the catalog and object storage across every upload and
// download flow.
type Service struct {
	catalog *catalog.Service
	objects storage.ObjectStore
	cfg     *config.Config
	logger  *slog.Logger
}

// NewService builds the upload orchestrator.
func NewService(cat *catalog.Service, objects storage.ObjectStore, cfg *config.Config, logger *slog.Logger) *Service {
	return &Service{
		catalog: cat,
		objects: objects,
		cfg:     cfg,
		logger:  logging.NewComponentLogger(logger, "uploads"),
	}
}

// UploadURL is the result of a presign request.
type UploadURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// GenerateUploadURL validates the request, rejects names already held by an
// active video, and returns a presigned PUT URL. No catalog row is written
// here; that happens at confirmation.
func (s *Service) GenerateUploadURL(ctx context.Context, req UploadRequest) (UploadURL, error) {
	key, err := validateRequest("generate upload url", req, s.cfg.Uploads.MaxPresignedBytes)
	if err != nil {
		return UploadURL{}, err
	}
	if _, exists, err := s.catalog.VideoByName(ctx, key); err != nil {
		return UploadURL{}, err
	} else if exists {
		return UploadURL{}, validationError("generate upload url", "a video with the same name already exists")
	}

	url, err := s.objects.PresignUpload(ctx, key, req.ContentType)
	if err != nil {
		return UploadURL{}, err
	}
	s.logger.Info("upload url generated", logging.String(logging.FieldKey, key))
	return UploadURL{URL: url, Key: key}, nil
}

// ConfirmUpload verifies the object actually landed in storage, then creates
// the video row and its associations. The client's word is never trusted; an
// absent object fails the confirmation and writes nothing.
func (s *Service) ConfirmUpload(ctx context.Context, req UploadRequest) (catalog.Video, error) {
	key, err := validateRequest("confirm upload", req, s.cfg.Uploads.MaxPresignedBytes)
	if err != nil {
		return catalog.Video{}, err
	}
	if !s.objects.Exists(ctx, key) {
		return catalog.Video{}, validationError("confirm upload", "upload is not complete")
	}

	video, err := s.catalog.CreateVideoWithPlayers(ctx,
		catalog.CreateVideoData{Name: key, Type: req.Type}, req.PlayerIDs)
	if err != nil {
		return catalog.Video{}, err
	}
	s.logger.Info("upload confirmed",
		logging.Int64(logging.FieldEntityID, video.ID),
		logging.String(logging.FieldKey, key))
	return video, nil
}

// ConfirmReplace finishes the edit flow for a presigned re-upload: it
// verifies the new object, best-effort deletes the superseded one, then
// rewrites the metadata and replaces the association set. When the metadata
// write fails after the old object is already gone, the error is marked as a
// partial failure so callers can tell the difference.
func (s *Service) ConfirmReplace(ctx context.Context, videoID int64, req UploadRequest) (catalog.Video, error) {
	key, err := validateRequest("confirm replace", req, s.cfg.Uploads.MaxPresignedBytes)
	if err != nil {
		return catalog.Video{}, err
	}
	existing, err := s.catalog.GetVideo(ctx, videoID)
	if err != nil {
		return catalog.Video{}, err
	}
	if !s.objects.Exists(ctx, key) {
		return catalog.Video{}, validationError("confirm replace", "upload is not complete")
	}

	oldDeleted := false
	if existing.Name != key {
		if err := s.objects.Delete(ctx, existing.Name); err != nil {
			s.logger.Warn("superseded object delete failed",
				logging.String(logging.FieldKey, existing.Name),
				logging.Error(err))
		} else {
			oldDeleted = true
		}
	}

	video, err := s.catalog.UpdateVideo(ctx, videoID, catalog.CreateVideoData{Name: key, Type: req.Type})
	if err != nil {
		if oldDeleted {
			return catalog.Video{}, services.Wrap(services.ErrPartialFailure, "uploads", "confirm replace",
				"old object deleted before metadata write failed",
				services.WithUserMessage("video file was replaced but updating its data failed", err))
		}
		return catalog.Video{}, err
	}
	if err := s.catalog.UpdateVideoPlayers(ctx, videoID, req.PlayerIDs); err != nil {
		return catalog.Video{}, err
	}

	s.logger.Info("replace confirmed",
		logging.Int64(logging.FieldEntityID, videoID),
		logging.String(logging.FieldKey, key))
	return video, nil
}

// BulkConfirm verifies every uploaded file before writing anything. A single
// missing file fails the whole batch, naming each absent file; on success the
// videos are created in one batched append followed by their associations.
func (s *Service) BulkConfirm(ctx context.Context, reqs []UploadRequest) ([]catalog.Video, error) {
	if len(reqs) == 0 {
		return nil, validationError("bulk confirm", "no files to confirm")
	}

	keys := make([]string, 0, len(reqs))
	for _, req := range reqs {
		key, err := validateRequest("bulk confirm", req, s.cfg.Uploads.MaxPresignedBytes)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	var missing []string
	for _, key := range keys {
		if !s.objects.Exists(ctx, key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, validationError("bulk confirm",
			"upload is not complete for:\n"+strings.Join(missing, "\n"))
	}

	batch := make([]catalog.CreateVideoData, 0, len(reqs))
	for i, req := range reqs {
		batch = append(batch, catalog.CreateVideoData{Name: keys[i], Type: req.Type})
	}
	videos, err := s.catalog.CreateVideos(ctx, batch)
	if err != nil {
		return nil, err
	}
	for i, video := range videos {
		for _, playerID := range reqs[i].PlayerIDs {
			if _, err := s.catalog.CreateAssociation(ctx, playerID, video.ID); err != nil {
				return nil, err
			}
		}
	}

	s.logger.Info("bulk upload confirmed", logging.Int(logging.FieldImpact, len(videos)))
	return videos, nil
}

// CreateDirect streams the file through the daemon into storage, then creates
// the video row and associations. Used for files small enough to proxy.
func (s *Service) CreateDirect(ctx context.Context, req UploadRequest, body io.Reader) (catalog.Video, error) {
	key, err := validateRequest("create direct", req, s.cfg.Uploads.MaxDirectCreateBytes)
	if err != nil {
		return catalog.Video{}, err
	}
	if _, exists, err := s.catalog.VideoByName(ctx, key); err != nil {
		return catalog.Video{}, err
	} else if exists {
		return catalog.Video{}, validationError("create direct", "a video with the same name already exists")
	}

	if err := s.objects.Upload(ctx, key, body, req.ContentType); err != nil {
		return catalog.Video{}, err
	}
	return s.catalog.CreateVideoWithPlayers(ctx,
		catalog.CreateVideoData{Name: key, Type: req.Type}, req.PlayerIDs)
}

// UpdateDirect rewrites a video's metadata and associations; when body is
// non-nil the new file is uploaded first and the superseded object is removed
// best effort.
func (s *Service) UpdateDirect(ctx context.Context, videoID int64, req UploadRequest, body io.Reader) (catalog.Video, error) {
	existing, err := s.catalog.GetVideo(ctx, videoID)
	if err != nil {
		return catalog.Video{}, err
	}

	key := existing.Name
	if body != nil {
		key, err = validateRequest("update direct", req, s.cfg.Uploads.MaxDirectUpdateBytes)
		if err != nil {
			return catalog.Video{}, err
		}
		if err := s.objects.Upload(ctx, key, body, req.ContentType); err != nil {
			return catalog.Video{}, err
		}
		if existing.Name != key {
			if err := s.objects.Delete(ctx, existing.Name); err != nil {
				s.logger.Warn("superseded object delete failed",
					logging.String(logging.FieldKey, existing.Name),
					logging.Error(err))
			}
		}
	} else {
		if !catalog.ValidVideoType(string(req.Type)) {
			return catalog.Video{}, validationError("update direct", "invalid video type")
		}
		if len(req.PlayerIDs) == 0 {
			return catalog.Video{}, validationError("update direct", "at least one player is required")
		}
	}

	video, err := s.catalog.UpdateVideo(ctx, videoID, catalog.CreateVideoData{Name: key, Type: req.Type})
	if err != nil {
		return catalog.Video{}, err
	}
	if err := s.catalog.UpdateVideoPlayers(ctx, videoID, req.PlayerIDs); err != nil {
		return catalog.Video{}, err
	}
	return video, nil
}

// Delete removes the video row with its associations, then best-effort
// deletes the stored object. A storage failure is logged and swallowed; the
// metadata delete has already happened and stays done.
func (s *Service) Delete(ctx context.Context, videoID int64) error {
	existing, err := s.catalog.GetVideo(ctx, videoID)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteVideo(ctx, videoID); err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, existing.Name); err != nil {
		s.logger.Warn("object delete failed after metadata delete",
			logging.String(logging.FieldKey, existing.Name),
			logging.Error(err))
	}
	return nil
}

// Download verifies the object exists and returns a presigned GET URL.
func (s *Service) Download(ctx context.Context, fileName string) (string, error) {
	key := storage.NormalizeKey(fileName)
	if err := storage.ValidateKey(key); err != nil {
		return "", err
	}
	if !s.objects.Exists(ctx, key) {
		return "", services.Wrap(services.ErrNotFound, "uploads", "download", "",
			services.WithUserMessage("video file not found", nil))
	}

	ttl := time.Duration(s.cfg.Uploads.DownloadTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return s.objects.PresignDownload(ctx, key, ttl)
}
