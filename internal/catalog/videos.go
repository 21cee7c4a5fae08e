package catalog

import (
	"context"
	"strings"

	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
)

// ListVideos returns every valid video.
func (s *Service) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := s.cachedRows(ctx, sheetVideos)
	if err != nil {
		return nil, storeErr("list videos", "failed to fetch video data", err)
	}
	videos := make([]Video, 0, len(rows))
	for _, row := range dataRows(rows) {
		if v := videoFromRow(row); v.valid() {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// GetVideo returns the video with the given ID.
func (s *Service) GetVideo(ctx context.Context, id int64) (Video, error) {
	videos, err := s.ListVideos(ctx)
	if err != nil {
		return Video{}, err
	}
	for _, v := range videos {
		if v.ID == id {
			return v, nil
		}
	}
	return Video{}, notFoundErr("get video", "specified video not found")
}

// VideoByName returns the valid video with the given name, if any.
func (s *Service) VideoByName(ctx context.Context, name string) (Video, bool, error) {
	videos, err := s.ListVideos(ctx)
	if err != nil {
		return Video{}, false, err
	}
	for _, v := range videos {
		if v.Name == name {
			return v, true, nil
		}
	}
	return Video{}, false, nil
}

// CreateVideo appends a new video and returns it with its assigned ID.
func (s *Service) CreateVideo(ctx context.Context, data CreateVideoData) (Video, error) {
	video, err := s.validateVideoData("create video", data)
	if err != nil {
		return Video{}, err
	}

	rows, err := s.freshRows(ctx, sheetVideos)
	if err != nil {
		return Video{}, storeErr("create video", "failed to create video", err)
	}
	video.ID = nextID(validVideoIDs(rows))
	if err := s.store.AppendRows(ctx, sheetVideos, [][]string{videoToRow(video)}); err != nil {
		return Video{}, storeErr("create video", "failed to create video", err)
	}
	s.invalidate(sheetVideos)

	s.logger.Info("video created",
		logging.Int64(logging.FieldEntityID, video.ID),
		logging.String("name", video.Name))
	return video, nil
}

// CreateVideos appends a batch of videos in one call, assigning consecutive
// IDs starting past the current maximum.
func (s *Service) CreateVideos(ctx context.Context, batch []CreateVideoData) ([]Video, error) {
	if len(batch) == 0 {
		return nil, nil
	}
	videos := make([]Video, 0, len(batch))
	for _, data := range batch {
		video, err := s.validateVideoData("create videos", data)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}

	rows, err := s.freshRows(ctx, sheetVideos)
	if err != nil {
		return nil, storeErr("create videos", "failed to create video", err)
	}
	id := nextID(validVideoIDs(rows))
	appended := make([][]string, 0, len(videos))
	for i := range videos {
		videos[i].ID = id
		id++
		appended = append(appended, videoToRow(videos[i]))
	}
	if err := s.store.AppendRows(ctx, sheetVideos, appended); err != nil {
		return nil, storeErr("create videos", "failed to create video", err)
	}
	s.invalidate(sheetVideos)

	s.logger.Info("videos created", logging.Int(logging.FieldImpact, len(videos)))
	return videos, nil
}

// UpdateVideo rewrites an existing video row.
func (s *Service) UpdateVideo(ctx context.Context, id int64, data CreateVideoData) (Video, error) {
	video, err := s.validateVideoData("update video", data)
	if err != nil {
		return Video{}, err
	}

	rows, err := s.freshRows(ctx, sheetVideos)
	if err != nil {
		return Video{}, storeErr("update video", "failed to update video", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return Video{}, notFoundErr("update video", "specified video not found")
	}

	video.ID = id
	target := rowstore.RowRange("A", "C", idx+headerOffset)
	if err := s.store.UpdateRange(ctx, sheetVideos, target, [][]string{videoToRow(video)}); err != nil {
		return Video{}, storeErr("update video", "failed to update video", err)
	}
	s.invalidate(sheetVideos)

	s.logger.Info("video updated", logging.Int64(logging.FieldEntityID, id))
	return video, nil
}

// DeleteVideo removes every association referencing the video, then
// soft-deletes the video itself by blanking its name cell. The row stays
// behind with its ID and type intact. The cascade runs first; a video must
// stay visible while associations still reference it.
func (s *Service) DeleteVideo(ctx context.Context, id int64) error {
	rows, err := s.freshRows(ctx, sheetVideos)
	if err != nil {
		return storeErr("delete video", "failed to delete video", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return notFoundErr("delete video", "specified video not found")
	}

	if err := s.DeleteAssociationsByVideoID(ctx, id); err != nil {
		return err
	}

	target := rowstore.Cell("B", idx+headerOffset)
	if err := s.store.UpdateRange(ctx, sheetVideos, target, [][]string{{""}}); err != nil {
		return storeErr("delete video", "failed to delete video", err)
	}
	s.invalidate(sheetVideos)

	s.logger.Info("video deleted", logging.Int64(logging.FieldEntityID, id))
	return nil
}

// CreateVideoWithPlayers creates the video, then one association per player,
// sequentially. A failed association leaves the video and any earlier
// associations in place.
func (s *Service) CreateVideoWithPlayers(ctx context.Context, data CreateVideoData, playerIDs []int64) (Video, error) {
	if len(playerIDs) == 0 {
		return Video{}, validationErr("create video with players", "at least one player is required")
	}
	video, err := s.CreateVideo(ctx, data)
	if err != nil {
		return Video{}, err
	}
	for _, playerID := range playerIDs {
		if _, err := s.CreateAssociation(ctx, playerID, video.ID); err != nil {
			return Video{}, err
		}
	}
	return video, nil
}

// UpdateVideoPlayers replaces a video's player set: every existing
// association is soft-deleted, then one association per player is created.
func (s *Service) UpdateVideoPlayers(ctx context.Context, videoID int64, playerIDs []int64) error {
	if len(playerIDs) == 0 {
		return validationErr("update video players", "at least one player is required")
	}
	if err := s.DeleteAssociationsByVideoID(ctx, videoID); err != nil {
		return err
	}
	for _, playerID := range playerIDs {
		if _, err := s.CreateAssociation(ctx, playerID, videoID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) validateVideoData(operation string, data CreateVideoData) (Video, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return Video{}, validationErr(operation, "video name is required")
	}
	if !ValidVideoType(string(data.Type)) {
		return Video{}, validationErr(operation, "invalid video type")
	}
	return Video{Name: name, Type: data.Type}, nil
}

func validVideoIDs(rows [][]string) []int64 {
	var ids []int64
	for _, row := range dataRows(rows) {
		if v := videoFromRow(row); v.valid() {
			ids = append(ids, v.ID)
		}
	}
	return ids
}
