package catalog

import (
	"context"
	"sync"
)

// memo caches one fetch result for the lifetime of a Session. The first
// caller pays for the fetch; concurrent callers block on the same Once and
// share the outcome, error included.
type memo[T any] struct {
	once  sync.Once
	value T
	err   error
}

func (m *memo[T]) get(fetch func() (T, error)) (T, error) {
	m.once.Do(func() {
		m.value, m.err = fetch()
	})
	return m.value, m.err
}

// Session memoizes catalog reads for the span of one logical request, so a
// handler that joins players, videos, and associations fetches each sheet at
// most once regardless of how many enriched views it builds.
type Session struct {
	svc *Service
	ctx context.Context

	players memo[[]Player]
	videos  memo[[]Video]
	links   memo[[]PlayerVideo]
}

// NewSession binds a request-scoped read session to ctx.
func (s *Service) NewSession(ctx context.Context) *Session {
	return &Session{svc: s, ctx: ctx}
}

func (sn *Session) Players() ([]Player, error) {
	return sn.players.get(func() ([]Player, error) { return sn.svc.ListPlayers(sn.ctx) })
}

func (sn *Session) Videos() ([]Video, error) {
	return sn.videos.get(func() ([]Video, error) { return sn.svc.ListVideos(sn.ctx) })
}

func (sn *Session) Associations() ([]PlayerVideo, error) {
	return sn.links.get(func() ([]PlayerVideo, error) { return sn.svc.ListAssociations(sn.ctx) })
}

// fetchAll loads the three sheets concurrently and returns the first error.
func (sn *Session) fetchAll() error {
	var wg sync.WaitGroup
	var errPlayers, errVideos, errLinks error
	wg.Add(3)
	go func() { defer wg.Done(); _, errPlayers = sn.Players() }()
	go func() { defer wg.Done(); _, errVideos = sn.Videos() }()
	go func() { defer wg.Done(); _, errLinks = sn.Associations() }()
	wg.Wait()
	for _, err := range []error{errPlayers, errVideos, errLinks} {
		if err != nil {
			return err
		}
	}
	return nil
}

// VideosByPlayerID returns the videos associated with one player, in
// association order. Associations pointing at a missing video are dropped
// silently; they are expected after video soft-deletes.
func (sn *Session) VideosByPlayerID(playerID int64) ([]Video, error) {
	if err := sn.fetchAll(); err != nil {
		return nil, err
	}
	videos, _ := sn.Videos()
	links, _ := sn.Associations()

	byID := make(map[int64]Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	var result []Video
	for _, link := range links {
		if link.PlayerID != playerID {
			continue
		}
		if v, ok := byID[link.VideoID]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

// VideosWithPlayers returns every video enriched with its associated players.
// A video with no surviving associations carries an empty player list.
func (sn *Session) VideosWithPlayers() ([]VideoWithPlayers, error) {
	if err := sn.fetchAll(); err != nil {
		return nil, err
	}
	players, _ := sn.Players()
	videos, _ := sn.Videos()
	links, _ := sn.Associations()

	playerByID := make(map[int64]Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}
	playersByVideo := make(map[int64][]Player)
	for _, link := range links {
		if p, ok := playerByID[link.PlayerID]; ok {
			playersByVideo[link.VideoID] = append(playersByVideo[link.VideoID], p)
		}
	}

	result := make([]VideoWithPlayers, 0, len(videos))
	for _, v := range videos {
		linked := playersByVideo[v.ID]
		if linked == nil {
			linked = []Player{}
		}
		result = append(result, VideoWithPlayers{Video: v, Players: linked})
	}
	return result, nil
}

// AssociationsWithDetails returns every association joined with its player
// and video fields. Associations whose player or video no longer resolves
// are dropped silently.
func (sn *Session) AssociationsWithDetails() ([]PlayerVideoWithDetails, error) {
	if err := sn.fetchAll(); err != nil {
		return nil, err
	}
	players, _ := sn.Players()
	videos, _ := sn.Videos()
	links, _ := sn.Associations()

	playerByID := make(map[int64]Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}
	videoByID := make(map[int64]Video, len(videos))
	for _, v := range videos {
		videoByID[v.ID] = v
	}

	var result []PlayerVideoWithDetails
	for _, link := range links {
		p, okP := playerByID[link.PlayerID]
		v, okV := videoByID[link.VideoID]
		if !okP || !okV {
			continue
		}
		result = append(result, PlayerVideoWithDetails{
			PlayerVideo: link,
			PlayerName:  p.Name,
			VideoName:   v.Name,
			VideoType:   v.Type,
		})
	}
	return result, nil
}
