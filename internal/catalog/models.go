package catalog

// VideoType labels the tournament stage a clip belongs to. The set is closed
// and the exact strings are stored in the sheet and shown to visitors.
type VideoType string

const (
	TypeQualifying VideoType = "予選"
	TypeTop16      VideoType = "TOP16"
	TypeTop8       VideoType = "TOP8"
	TypeTop4       VideoType = "TOP4"
	TypeThirdPlace VideoType = "3位決定戦"
	TypeFinal      VideoType = "決勝戦"
)

// VideoTypes lists every valid tournament stage in display order.
var VideoTypes = []VideoType{
	TypeQualifying,
	TypeTop16,
	TypeTop8,
	TypeTop4,
	TypeThirdPlace,
	TypeFinal,
}

var videoTypeSet = func() map[VideoType]struct{} {
	set := make(map[VideoType]struct{}, len(VideoTypes))
	for _, vt := range VideoTypes {
		set[vt] = struct{}{}
	}
	return set
}()

// ValidVideoType reports whether value is one of the closed stage labels.
func ValidVideoType(value string) bool {
	_, ok := videoTypeSet[VideoType(value)]
	return ok
}

// Player is a roster entry.
type Player struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Video is a tournament clip. Name is the object-storage key.
type Video struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Type VideoType `json:"type"`
}

// PlayerVideo links one player to one video.
type PlayerVideo struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
	VideoID  int64 `json:"video_id"`
}

// PlayerVideoWithDetails is an association enriched with the joined player
// and video fields. Computed on read, never persisted.
type PlayerVideoWithDetails struct {
	PlayerVideo
	PlayerName string    `json:"player_name"`
	VideoName  string    `json:"video_name"`
	VideoType  VideoType `json:"video_type"`
}

// VideoWithPlayers is a video enriched with its associated players.
type VideoWithPlayers struct {
	Video
	Players []Player `json:"players"`
}

// CreatePlayerData carries the fields needed to create a player.
type CreatePlayerData struct {
	Name string
}

// CreateVideoData carries the fields needed to create a video.
type CreateVideoData struct {
	Name string
	Type VideoType
}

func (p Player) valid() bool {
	return p.ID > 0 && p.Name != ""
}

func (v Video) valid() bool {
	return v.ID > 0 && v.Name != "" && v.Type != ""
}

func (pv PlayerVideo) valid() bool {
	return pv.ID > 0 && pv.PlayerID > 0 && pv.VideoID > 0
}
