package catalog

import (
	"context"
	"strings"
	"unicode/utf8"

	"clipvault/internal/logging"
	"clipvault/internal/rowstore"
)

// ListPlayers returns every valid player.
func (s *Service) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.cachedRows(ctx, sheetPlayers)
	if err != nil {
		return nil, storeErr("list players", "failed to fetch player data", err)
	}
	players := make([]Player, 0, len(rows))
	for _, row := range dataRows(rows) {
		if p := playerFromRow(row); p.valid() {
			players = append(players, p)
		}
	}
	return players, nil
}

// GetPlayer returns the player with the given ID.
func (s *Service) GetPlayer(ctx context.Context, id int64) (Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return Player{}, err
	}
	for _, p := range players {
		if p.ID == id {
			return p, nil
		}
	}
	return Player{}, notFoundErr("get player", "specified player not found")
}

// CreatePlayer appends a new player and returns it with its assigned ID.
func (s *Service) CreatePlayer(ctx context.Context, data CreatePlayerData) (Player, error) {
	name, err := validatePlayerName("create player", data.Name)
	if err != nil {
		return Player{}, err
	}

	rows, err := s.freshRows(ctx, sheetPlayers)
	if err != nil {
		return Player{}, storeErr("create player", "failed to create player", err)
	}
	var ids []int64
	for _, row := range dataRows(rows) {
		if p := playerFromRow(row); p.valid() {
			ids = append(ids, p.ID)
		}
	}

	player := Player{ID: nextID(ids), Name: name}
	if err := s.store.AppendRows(ctx, sheetPlayers, [][]string{playerToRow(player)}); err != nil {
		return Player{}, storeErr("create player", "failed to create player", err)
	}
	s.invalidate(sheetPlayers)

	s.logger.Info("player created",
		logging.Int64(logging.FieldEntityID, player.ID),
		logging.String("name", player.Name))
	return player, nil
}

// UpdatePlayer renames an existing player.
func (s *Service) UpdatePlayer(ctx context.Context, id int64, name string) (Player, error) {
	name, err := validatePlayerName("update player", name)
	if err != nil {
		return Player{}, err
	}

	rows, err := s.freshRows(ctx, sheetPlayers)
	if err != nil {
		return Player{}, storeErr("update player", "failed to update player", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return Player{}, notFoundErr("update player", "specified player not found")
	}

	player := Player{ID: id, Name: name}
	target := rowstore.RowRange("A", "B", idx+headerOffset)
	if err := s.store.UpdateRange(ctx, sheetPlayers, target, [][]string{playerToRow(player)}); err != nil {
		return Player{}, storeErr("update player", "failed to update player", err)
	}
	s.invalidate(sheetPlayers)

	s.logger.Info("player updated", logging.Int64(logging.FieldEntityID, id))
	return player, nil
}

// DeletePlayer physically removes the player's row. Associations referencing
// the player are left in place and disappear from joined reads.
func (s *Service) DeletePlayer(ctx context.Context, id int64) error {
	rows, err := s.freshRows(ctx, sheetPlayers)
	if err != nil {
		return storeErr("delete player", "failed to delete player", err)
	}
	idx, ok := findRowByID(rows, id)
	if !ok {
		return notFoundErr("delete player", "specified player not found")
	}

	// DeleteRow addresses the zero-based sheet row, header included.
	if err := s.store.DeleteRow(ctx, sheetPlayers, idx+1); err != nil {
		return storeErr("delete player", "failed to delete player", err)
	}
	s.invalidate(sheetPlayers)

	s.logger.Info("player deleted", logging.Int64(logging.FieldEntityID, id))
	return nil
}

// validatePlayerName trims the name and enforces the display limit, counted
// in runes.
func validatePlayerName(operation, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationErr(operation, "player name is required")
	}
	if utf8.RuneCountInString(name) > 50 {
		return "", validationErr(operation, "player name must be 50 characters or less")
	}
	return name, nil
}

// findRowByID scans the raw data rows, soft-deleted ones included, and
// returns the zero-based data index of the row whose first cell matches id.
func findRowByID(rows [][]string, id int64) (int, bool) {
	for i, row := range dataRows(rows) {
		if cellInt(row, 0) == id {
			return i, true
		}
	}
	return 0, false
}
