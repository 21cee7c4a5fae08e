package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clipvault/internal/catalog"
)

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.catalog.ListPlayers(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, players)
}

// playerDetail is the enriched public view of one player.
type playerDetail struct {
	catalog.Player
	Videos []catalog.Video `json:"videos"`
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	session := s.catalog.NewSession(r.Context())
	player, err := s.catalog.GetPlayer(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	videos, err := session.VideosByPlayerID(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if videos == nil {
		videos = []catalog.Video{}
	}
	s.writeData(w, http.StatusOK, playerDetail{Player: player, Videos: videos})
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.catalog.NewSession(r.Context()).VideosWithPlayers()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, videos)
}

type downloadRequest struct {
	FileName string `json:"file_name"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	url, err := s.uploads.Download(r.Context(), req.FileName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, downloadResponse{URL: url})
}

// pathID parses the {id} path segment, answering 400 on garbage.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeMessage(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
