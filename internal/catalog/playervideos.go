package catalog

import (
	"context"

	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
)

// ListAssociations returns every valid player-video association.
func (s *Service) ListAssociations(ctx context.Context) ([]PlayerVideo, error) {
	rows, err := s.cachedRows(ctx, sheetPlayerVideos)
	if err != nil {
		return nil, storeErr("list associations", "failed to fetch mapping data", err)
	}
	links := make([]PlayerVideo, 0, len(rows))
	for _, row := range dataRows(rows) {
		if pv := playerVideoFromRow(row); pv.valid() {
			links = append(links, pv)
		}
	}
	return links, nil
}

// CreateAssociation links a player to a video.
func (s *Service) CreateAssociation(ctx context.Context, playerID, videoID int64) (PlayerVideo, error) {
	if playerID <= 0 || videoID <= 0 {
		return PlayerVideo{}, validationErr("create association", "player and video are required")
	}

	rows, err := s.freshRows(ctx, sheetPlayerVideos)
	if err != nil {
		return PlayerVideo{}, storeErr("create association", "failed to create mapping", err)
	}
	var ids []int64
	for _, row := range dataRows(rows) {
		if pv := playerVideoFromRow(row); pv.valid() {
			ids = append(ids, pv.ID)
		}
	}

	link := PlayerVideo{ID: nextID(ids), PlayerID: playerID, VideoID: videoID}
	if err := s.store.AppendRows(ctx, sheetPlayerVideos, [][]string{playerVideoToRow(link)}); err != nil {
		return PlayerVideo{}, storeErr("create association", "failed to create mapping", err)
	}
	s.invalidate(sheetPlayerVideos)

	s.logger.Info("association created",
		logging.Int64(logging.FieldEntityID, link.ID),
		logging.Int64("player_id", playerID),
		logging.Int64("video_id", videoID))
	return link, nil
}

// UpdateAssociation repoints an existing association.
func (s *Service) UpdateAssociation(ctx context.Context, id, playerID, videoID int64) (PlayerVideo, error) {
	if playerID <= 0 || videoID <= 0 {
		return PlayerVideo{}, validationErr("update association", "player and video are required")
	}

	rows, err := s.freshRows(ctx, sheetPlayerVideos)
	if err != nil {
		return PlayerVideo{}, storeErr("update association", "failed to update mapping", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return PlayerVideo{}, notFoundErr("update association", "specified mapping not found")
	}

	link := PlayerVideo{ID: id, PlayerID: playerID, VideoID: videoID}
	target := rowstore.RowRange("A", "C", idx+headerOffset)
	if err := s.store.UpdateRange(ctx, sheetPlayerVideos, target, [][]string{playerVideoToRow(link)}); err != nil {
		return PlayerVideo{}, storeErr("update association", "failed to update mapping", err)
	}
	s.invalidate(sheetPlayerVideos)

	s.logger.Info("association updated", logging.Int64(logging.FieldEntityID, id))
	return link, nil
}

// DeleteAssociation soft-deletes one association by zeroing its player_id
// cell. The zero fails the validity predicate, so reads skip the row, while
// the ID stays occupied.
func (s *Service) DeleteAssociation(ctx context.Context, id int64) error {
	rows, err := s.freshRows(ctx, sheetPlayerVideos)
	if err != nil {
		return storeErr("delete association", "failed to delete mapping", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return notFoundErr("delete association", "specified mapping not found")
	}

	if err := s.zeroAssociation(ctx, idx); err != nil {
		return storeErr("delete association", "failed to delete mapping", err)
	}
	s.invalidate(sheetPlayerVideos)

	s.logger.Info("association deleted", logging.Int64(logging.FieldEntityID, id))
	return nil
}

// DeleteAssociationsByVideoID soft-deletes every association pointing at the
// video. Deleting zero associations is not an error.
func (s *Service) DeleteAssociationsByVideoID(ctx context.Context, videoID int64) error {
	rows, err := s.freshRows(ctx, sheetPlayerVideos)
	if err != nil {
		return storeErr("delete associations by video", "failed to delete mapping", err)
	}

	deleted := 0
	for idx, row := range dataRows(rows) {
		pv := playerVideoFromRow(row)
		if !pv.valid() || pv.VideoID != videoID {
			continue
		}
		if err := s.zeroAssociation(ctx, idx); err != nil {
			// Rows zeroed before the failure must not linger in the cache.
			if deleted > 0 {
				s.invalidate(sheetPlayerVideos)
			}
			return storeErr("delete associations by video", "failed to delete mapping", err)
		}
		deleted++
	}
	if deleted > 0 {
		s.invalidate(sheetPlayerVideos)
		s.logger.Info("associations deleted for video",
			logging.Int64("video_id", videoID),
			logging.Int(logging.FieldImpact, deleted))
	}
	return nil
}

func (s *Service) zeroAssociation(ctx context.Context, dataIdx int) error {
	target := rowstore.Cell("B", dataIdx+headerOffset)
	return s.store.UpdateRange(ctx, sheetPlayerVideos, target, [][]string{{"0"}})
}
