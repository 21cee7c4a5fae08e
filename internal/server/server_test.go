package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clipvault/internal/catalog"
	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/server"
	"clipvault/internal/testsupport"
	"clipvault/internal/uploads"
)

type fixture struct {
	handler http.Handler
	store   *testsupport.FakeStore
	objects *testsupport.FakeObjectStore
	cfg     *config.Config
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) *fixture {
	t.Helper()
	store := testsupport.NewFakeStore(map[string][][]string{
		"players":       {{"id", "name"}, {"1", "Alice"}, {"2", "Bob"}},
		"videos":        {{"id", "name", "type"}, {"1", "final.mp4", "決勝戦"}},
		"player_videos": {{"id", "player_id", "video_id"}, {"1", "1", "1"}},
	})
	objects := testsupport.NewFakeObjectStore("final.mp4")
	cfg := testsupport.NewConfig(t, opts...)
	cat := catalog.NewService(store, cfg, logging.NewNop())
	up := uploads.NewService(cat, objects, cfg, logging.NewNop())
	srv := server.New(cfg, cat, up, logging.NewNop())
	return &fixture{handler: srv.Handler(), store: store, objects: objects, cfg: cfg}
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (f *fixture) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func asAdmin(req *http.Request) *http.Request {
	req.SetBasicAuth("admin", "secret")
	return req
}

func TestListPlayers(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/players", nil))
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	var players []catalog.Player
	if err := json.Unmarshal(env.Data, &players); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if len(players) != 2 || players[0].Name != "Alice" {
		t.Fatalf("unexpected players %+v", players)
	}
}

func TestGetPlayerEnriched(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/players/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var detail struct {
		catalog.Player
		Videos []catalog.Video `json:"videos"`
	}
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Name != "Alice" || len(detail.Videos) != 1 || detail.Videos[0].Name != "final.mp4" {
		t.Fatalf("unexpected detail %+v", detail)
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/players/42", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if env.Error != "specified player not found" {
		t.Fatalf("unexpected error %q", env.Error)
	}
}

func TestListVideosWithPlayers(t *testing.T) {
	f := newFixture(t)

	rec, env := f.do(t, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	var videos []catalog.VideoWithPlayers
	if err := json.Unmarshal(env.Data, &videos); err != nil {
		t.Fatalf("decode videos: %v", err)
	}
	if len(videos) != 1 || len(videos[0].Players) != 1 || videos[0].Players[0].Name != "Alice" {
		t.Fatalf("unexpected videos %+v", videos)
	}
}

func TestDownload(t *testing.T) {
	f := newFixture(t)

	body := strings.NewReader(`{"file_name":"final.mp4"}`)
	rec, env := f.do(t, httptest.NewRequest(http.MethodPost, "/api/downloads", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !strings.Contains(payload.URL, "download/final.mp4") {
		t.Fatalf("unexpected URL %q", payload.URL)
	}
}

func TestAdminRequiresBasicAuth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/players", strings.NewReader(`{"name":"Carol"}`))
	rec, _ := f.do(t, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != `Basic realm="Admin Area"` {
		t.Fatalf("unexpected challenge %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin/api/players", strings.NewReader(`{"name":"Carol"}`))
	req.SetBasicAuth("admin", "wrong")
	if rec, _ := f.do(t, req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", rec.Code)
	}
}

func TestAdminMissingServerCredentialsIs500(t *testing.T) {
	f := newFixture(t, testsupport.WithAdminCredentials("", ""))

	req := httptest.NewRequest(http.MethodPost, "/admin/api/players", strings.NewReader(`{"name":"Carol"}`))
	req.SetBasicAuth("admin", "secret")
	rec, env := f.do(t, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unset server credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") != "" {
		t.Fatal("misconfiguration must not challenge the client")
	}
	if env.Error != "server configuration error" {
		t.Fatalf("unexpected error %q", env.Error)
	}
}

func TestCreatePlayer(t *testing.T) {
	f := newFixture(t)

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/players", strings.NewReader(`{"name":"Carol"}`)))
	rec, env := f.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var player catalog.Player
	if err := json.Unmarshal(env.Data, &player); err != nil {
		t.Fatalf("decode player: %v", err)
	}
	if player.ID != 3 || player.Name != "Carol" {
		t.Fatalf("unexpected player %+v", player)
	}
}

func TestPresignedUploadFlow(t *testing.T) {
	f := newFixture(t)

	presign := `{"file_name":"semi.mp4","file_size":1048576,"type":"TOP4","player_ids":[2]}`
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/uploads", strings.NewReader(presign)))
	rec, env := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("presign failed: %d %s", rec.Code, rec.Body.String())
	}
	var url struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	if err := json.Unmarshal(env.Data, &url); err != nil {
		t.Fatalf("decode url: %v", err)
	}
	if url.Key != "semi.mp4" {
		t.Fatalf("unexpected key %q", url.Key)
	}

	// Confirmation before the object lands must fail and write nothing.
	req = asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/uploads/confirm", strings.NewReader(presign)))
	rec, env = f.do(t, req)
	if rec.Code != http.StatusBadRequest || env.Error != "upload is not complete" {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	f.objects.Put("semi.mp4", nil)
	req = asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/uploads/confirm", strings.NewReader(presign)))
	rec, env = f.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirm failed: %d %s", rec.Code, rec.Body.String())
	}
	var video catalog.Video
	if err := json.Unmarshal(env.Data, &video); err != nil {
		t.Fatalf("decode video: %v", err)
	}
	if video.ID != 2 || video.Type != catalog.TypeTop4 {
		t.Fatalf("unexpected video %+v", video)
	}
}

func TestBulkConfirmReportsMissingFiles(t *testing.T) {
	f := newFixture(t)

	body := `{"files":[
		{"file_name":"video1.mp4","file_size":1024,"type":"予選","player_ids":[1]},
		{"file_name":"video2.mp4","file_size":1024,"type":"予選","player_ids":[2]}
	]}`
	f.objects.Put("video1.mp4", nil)

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/uploads/bulk-confirm", strings.NewReader(body)))
	rec, env := f.do(t, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(env.Error, "video2.mp4") || strings.Contains(env.Error, "video1.mp4") {
		t.Fatalf("unexpected error %q", env.Error)
	}
}

func TestCreateVideoDirectMultipart(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "direct.mp4")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := io.WriteString(part, "bytes"); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := form.WriteField("type", "TOP16"); err != nil {
		t.Fatalf("write type: %v", err)
	}
	if err := form.WriteField("player_ids", "1"); err != nil {
		t.Fatalf("write player_ids: %v", err)
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := asAdmin(httptest.NewRequest(http.MethodPost, "/admin/api/videos", &buf))
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec, env := f.do(t, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var video catalog.Video
	if err := json.Unmarshal(env.Data, &video); err != nil {
		t.Fatalf("decode video: %v", err)
	}
	if video.Name != "direct.mp4" || video.Type != catalog.TypeTop16 {
		t.Fatalf("unexpected video %+v", video)
	}
	if !f.objects.Has("direct.mp4") {
		t.Fatal("object not uploaded")
	}
}

func TestDeleteVideoCascades(t *testing.T) {
	f := newFixture(t)

	req := asAdmin(httptest.NewRequest(http.MethodDelete, "/admin/api/videos/1", nil))
	rec, _ := f.do(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if f.objects.Has("final.mp4") {
		t.Fatal("stored object should be removed")
	}
	if rows := f.store.Rows("player_videos"); rows[1][1] != "0" {
		t.Fatalf("association not cleared: %v", rows[1])
	}
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/api/players", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec, _ = f.do(t, req)
	if got := rec.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("expected client id echoed, got %q", got)
	}
}
