package catalog

import "strconv"

// Sheet names. Row 0 of each sheet is its header.
const (
	sheetPlayers      = "players"
	sheetVideos       = "videos"
	sheetPlayerVideos = "player_videos"
)

// headerOffset converts a zero-based data-row index into a 1-based sheet row
// number: +1 for the header row, +1 for 1-based addressing.
const headerOffset = 2

// cellInt coerces a cell to an int64; missing or non-numeric cells become 0,
// which the validity predicates then reject.
func cellInt(row []string, col int) int64 {
	if col >= len(row) {
		return 0
	}
	n, err := strconv.ParseInt(row[col], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// cellString coerces a cell to a string; missing cells become empty.
func cellString(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func playerFromRow(row []string) Player {
	return Player{
		ID:   cellInt(row, 0),
		Name: cellString(row, 1),
	}
}

func playerToRow(p Player) []string {
	return []string{strconv.FormatInt(p.ID, 10), p.Name}
}

func videoFromRow(row []string) Video {
	return Video{
		ID:   cellInt(row, 0),
		Name: cellString(row, 1),
		Type: VideoType(cellString(row, 2)),
	}
}

func videoToRow(v Video) []string {
	return []string{strconv.FormatInt(v.ID, 10), v.Name, string(v.Type)}
}

func playerVideoFromRow(row []string) PlayerVideo {
	return PlayerVideo{
		ID:       cellInt(row, 0),
		PlayerID: cellInt(row, 1),
		VideoID:  cellInt(row, 2),
	}
}

func playerVideoToRow(pv PlayerVideo) []string {
	return []string{
		strconv.FormatInt(pv.ID, 10),
		strconv.FormatInt(pv.PlayerID, 10),
		strconv.FormatInt(pv.VideoID, 10),
	}
}

// dataRows drops the header row.
func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// nextID assigns 1 + max(existing IDs), or 1 when the slice is empty.
// Callers pass the IDs of currently valid rows only, so gaps below the
// maximum are never refilled.
func nextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
