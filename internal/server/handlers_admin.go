package server

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"

	"clipvault/internal/catalog"
	"clipvault/internal/uploads"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger files spill to temp storage.
const maxMultipartMemory = 32 << 20

type playerRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := s.catalog.CreatePlayer(r.Context(), catalog.CreatePlayerData{Name: req.Name})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, player)
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := s.catalog.UpdatePlayer(r.Context(), id, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeletePlayer(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, nil)
}

func (s *Server) handleCreateVideoDirect(w http.ResponseWriter, r *http.Request) {
	req, file, ok := s.parseVideoForm(w, r, true)
	if !ok {
		return
	}
	defer file.Close()

	video, err := s.uploads.CreateDirect(r.Context(), req, file)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, video)
}

func (s *Server) handleUpdateVideoDirect(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	req, file, ok := s.parseVideoForm(w, r, false)
	if !ok {
		return
	}

	var video catalog.Video
	var err error
	if file != nil {
		defer file.Close()
		video, err = s.uploads.UpdateDirect(r.Context(), id, req, file)
	} else {
		video, err = s.uploads.UpdateDirect(r.Context(), id, req, nil)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, video)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.uploads.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, nil)
}

// uploadPayload is the JSON body shared by the presigned-flow endpoints.
type uploadPayload struct {
	VideoID     int64   `json:"video_id,omitempty"`
	FileName    string  `json:"file_name"`
	FileSize    int64   `json:"file_size"`
	ContentType string  `json:"content_type"`
	Type        string  `json:"type"`
	PlayerIDs   []int64 `json:"player_ids"`
}

func (p uploadPayload) request() uploads.UploadRequest {
	return uploads.UploadRequest{
		FileName:    p.FileName,
		FileSize:    p.FileSize,
		ContentType: p.ContentType,
		Type:        catalog.VideoType(p.Type),
		PlayerIDs:   p.PlayerIDs,
	}
}

func (s *Server) handleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var payload uploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.uploads.GenerateUploadURL(r.Context(), payload.request())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, result)
}

func (s *Server) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	var payload uploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	video, err := s.uploads.ConfirmUpload(r.Context(), payload.request())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, video)
}

func (s *Server) handleConfirmReplace(w http.ResponseWriter, r *http.Request) {
	var payload uploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.VideoID <= 0 {
		s.writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	video, err := s.uploads.ConfirmReplace(r.Context(), payload.VideoID, payload.request())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusOK, video)
}

type bulkConfirmPayload struct {
	Files []uploadPayload `json:"files"`
}

func (s *Server) handleBulkConfirm(w http.ResponseWriter, r *http.Request) {
	var payload bulkConfirmPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	reqs := make([]uploads.UploadRequest, 0, len(payload.Files))
	for _, file := range payload.Files {
		reqs = append(reqs, file.request())
	}
	videos, err := s.uploads.BulkConfirm(r.Context(), reqs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeData(w, http.StatusCreated, videos)
}

// parseVideoForm extracts the multipart direct-upload form. When fileRequired
// is false a missing file part yields a nil file and a metadata-only request.
func (s *Server) parseVideoForm(w http.ResponseWriter, r *http.Request, fileRequired bool) (uploads.UploadRequest, multipart.File, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return uploads.UploadRequest{}, nil, false
	}

	req := uploads.UploadRequest{
		Type: catalog.VideoType(r.FormValue("type")),
	}
	for _, raw := range r.Form["player_ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			s.writeMessage(w, http.StatusBadRequest, "invalid player id")
			return uploads.UploadRequest{}, nil, false
		}
		req.PlayerIDs = append(req.PlayerIDs, id)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if !fileRequired {
			return req, nil, true
		}
		s.writeMessage(w, http.StatusBadRequest, "video file is required")
		return uploads.UploadRequest{}, nil, false
	}
	req.FileName = header.Filename
	req.FileSize = header.Size
	req.ContentType = header.Header.Get("Content-Type")
	return req, file, true
}
