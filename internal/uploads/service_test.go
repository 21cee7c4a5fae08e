package uploads_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"clipvault/internal/catalog"
	"clipvault/internal/config"
	"clipvault/internal/logging"
	"clipvault/internal/services"
	"clipvault/internal/testsupport"
	"clipvault/internal/uploads"
)

type fixture struct {
	svc     *uploads.Service
	catalog *catalog.Service
	store   *testsupport.FakeStore
	objects *testsupport.FakeObjectStore
	cfg     *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testsupport.NewFakeStore(map[string][][]string{
		"players":       {{"id", "name"}, {"1", "Alice"}, {"2", "Bob"}},
		"videos":        {{"id", "name", "type"}},
		"player_videos": {{"id", "player_id", "video_id"}},
	})
	objects := testsupport.NewFakeObjectStore()
	cfg := testsupport.NewConfig(t)
	cat := catalog.NewService(store, cfg, logging.NewNop())
	return &fixture{
		svc:     uploads.NewService(cat, objects, cfg, logging.NewNop()),
		catalog: cat,
		store:   store,
		objects: objects,
		cfg:     cfg,
	}
}

func request(name string) uploads.UploadRequest {
	return uploads.UploadRequest{
		FileName:  name,
		FileSize:  10 * 1024 * 1024,
		Type:      catalog.TypeFinal,
		PlayerIDs: []int64{1},
	}
}

func TestGenerateUploadURLReturnsPresignedPut(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.GenerateUploadURL(context.Background(), request("final.mp4"))
	if err != nil {
		t.Fatalf("GenerateUploadURL: %v", err)
	}
	if result.Key != "final.mp4" {
		t.Fatalf("unexpected key %q", result.Key)
	}
	if !strings.Contains(result.URL, "upload/final.mp4") {
		t.Fatalf("unexpected URL %q", result.URL)
	}
}

func TestGenerateUploadURLValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  uploads.UploadRequest
		msg  string
	}{
		{"bad extension", uploads.UploadRequest{FileName: "clip.wmv", FileSize: 1024, Type: catalog.TypeFinal, PlayerIDs: []int64{1}}, "unsupported file type"},
		{"over ceiling", uploads.UploadRequest{FileName: "clip.mp4", FileSize: f.cfg.Uploads.MaxPresignedBytes + 1, Type: catalog.TypeFinal, PlayerIDs: []int64{1}}, "file size must be 2048MB or less"},
		{"bad type", uploads.UploadRequest{FileName: "clip.mp4", FileSize: 1024, Type: "semifinal", PlayerIDs: []int64{1}}, "invalid video type"},
		{"no players", uploads.UploadRequest{FileName: "clip.mp4", FileSize: 1024, Type: catalog.TypeFinal}, "at least one player is required"},
	}
	for _, tc := range cases {
		_, err := f.svc.GenerateUploadURL(ctx, tc.req)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if msg := services.UserMessage(err, ""); msg != tc.msg {
			t.Fatalf("%s: unexpected user message %q", tc.name, msg)
		}
	}
}

func TestGenerateUploadURLRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("final.mp4", nil)
	if _, err := f.svc.ConfirmUpload(ctx, request("final.mp4")); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	_, err := f.svc.GenerateUploadURL(ctx, request("final.mp4"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg := services.UserMessage(err, ""); msg != "a video with the same name already exists" {
		t.Fatalf("unexpected user message %q", msg)
	}
}

func TestConfirmUploadRequiresObject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ConfirmUpload(context.Background(), request("missing.mp4"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg := services.UserMessage(err, ""); msg != "upload is not complete" {
		t.Fatalf("unexpected user message %q", msg)
	}
	if rows := f.store.Rows("videos"); len(rows) != 1 {
		t.Fatalf("no row may be written on a failed confirmation, got %v", rows)
	}
}

func TestConfirmUploadCreatesVideoAndAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("final.mp4", nil)
	req := request("final.mp4")
	req.PlayerIDs = []int64{1, 2}

	video, err := f.svc.ConfirmUpload(ctx, req)
	if err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	if video.ID != 1 || video.Name != "final.mp4" {
		t.Fatalf("unexpected video %+v", video)
	}

	assocs, err := f.catalog.ListAssociations(ctx)
	if err != nil {
		t.Fatalf("ListAssociations: %v", err)
	}
	if len(assocs) != 2 {
		t.Fatalf("expected 2 associations, got %+v", assocs)
	}
}

func TestConfirmReplaceMarksPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("old.mp4", nil)
	if _, err := f.svc.ConfirmUpload(ctx, request("old.mp4")); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	f.objects.Put("new.mp4", nil)
	f.store.FailWith("update", errors.New("quota exceeded"))

	_, err := f.svc.ConfirmReplace(ctx, 1, request("new.mp4"))
	if !errors.Is(err, services.ErrPartialFailure) {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if f.objects.Has("old.mp4") {
		t.Fatal("old object should have been deleted before the failing write")
	}
}

func TestConfirmReplaceUpdatesMetadataAndAssociations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("old.mp4", nil)
	if _, err := f.svc.ConfirmUpload(ctx, request("old.mp4")); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	f.objects.Put("new.mp4", nil)
	req := request("new.mp4")
	req.Type = catalog.TypeTop4
	req.PlayerIDs = []int64{2}

	video, err := f.svc.ConfirmReplace(ctx, 1, req)
	if err != nil {
		t.Fatalf("ConfirmReplace: %v", err)
	}
	if video.Name != "new.mp4" || video.Type != catalog.TypeTop4 {
		t.Fatalf("unexpected video %+v", video)
	}
	if f.objects.Has("old.mp4") {
		t.Fatal("superseded object should be deleted")
	}

	assocs, err := f.catalog.ListAssociations(ctx)
	if err != nil {
		t.Fatalf("ListAssociations: %v", err)
	}
	if len(assocs) != 1 || assocs[0].PlayerID != 2 {
		t.Fatalf("expected replaced association set, got %+v", assocs)
	}
}

func TestBulkConfirmNamesEveryMissingFile(t *testing.T) {
	f := newFixture(t)

	f.objects.Put("video1.mp4", nil)
	_, err := f.svc.BulkConfirm(context.Background(), []uploads.UploadRequest{
		request("video1.mp4"),
		request("video2.mp4"),
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	msg := services.UserMessage(err, "")
	if !strings.Contains(msg, "video2.mp4") {
		t.Fatalf("missing file not named: %q", msg)
	}
	if strings.Contains(msg, "video1.mp4") {
		t.Fatalf("present file wrongly named: %q", msg)
	}
	if rows := f.store.Rows("videos"); len(rows) != 1 {
		t.Fatalf("bulk confirmation must be all-or-nothing, got %v", rows)
	}
}

func TestBulkConfirmCreatesBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("video1.mp4", nil)
	f.objects.Put("video2.mp4", nil)
	second := request("video2.mp4")
	second.PlayerIDs = []int64{2}

	videos, err := f.svc.BulkConfirm(ctx, []uploads.UploadRequest{request("video1.mp4"), second})
	if err != nil {
		t.Fatalf("BulkConfirm: %v", err)
	}
	if len(videos) != 2 || videos[0].ID != 1 || videos[1].ID != 2 {
		t.Fatalf("unexpected videos %+v", videos)
	}

	assocs, err := f.catalog.ListAssociations(ctx)
	if err != nil {
		t.Fatalf("ListAssociations: %v", err)
	}
	if len(assocs) != 2 || assocs[1].PlayerID != 2 || assocs[1].VideoID != 2 {
		t.Fatalf("unexpected associations %+v", assocs)
	}
}

func TestCreateDirectStreamsThenWritesRow(t *testing.T) {
	f := newFixture(t)

	video, err := f.svc.CreateDirect(context.Background(), request("direct.mp4"),
		strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("CreateDirect: %v", err)
	}
	if !f.objects.Has("direct.mp4") {
		t.Fatal("object not uploaded")
	}
	if video.ID != 1 {
		t.Fatalf("unexpected video %+v", video)
	}
}

func TestUpdateDirectMetadataOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("final.mp4", nil)
	if _, err := f.svc.ConfirmUpload(ctx, request("final.mp4")); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}

	// A nil body edits type and players without touching storage.
	req := request("final.mp4")
	req.Type = catalog.TypeTop16
	req.PlayerIDs = []int64{2}

	video, err := f.svc.UpdateDirect(ctx, 1, req, nil)
	if err != nil {
		t.Fatalf("UpdateDirect: %v", err)
	}
	if video.Name != "final.mp4" || video.Type != catalog.TypeTop16 {
		t.Fatalf("unexpected video %+v", video)
	}
	if len(f.objects.Uploads) != 0 {
		t.Fatalf("metadata-only edit must not upload, got %v", f.objects.Uploads)
	}

	assocs, err := f.catalog.ListAssociations(ctx)
	if err != nil {
		t.Fatalf("ListAssociations: %v", err)
	}
	if len(assocs) != 1 || assocs[0].PlayerID != 2 {
		t.Fatalf("expected replaced association set, got %+v", assocs)
	}

	bad := request("final.mp4")
	bad.Type = "semifinal"
	if _, err := f.svc.UpdateDirect(ctx, 1, bad, nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}

func TestDeleteSurvivesStorageFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.objects.Put("final.mp4", nil)
	if _, err := f.svc.ConfirmUpload(ctx, request("final.mp4")); err != nil {
		t.Fatalf("ConfirmUpload: %v", err)
	}
	f.objects.FailWith("delete", errors.New("endpoint down"))

	if err := f.svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete should swallow storage failures, got %v", err)
	}
	videos, err := f.catalog.ListVideos(ctx)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("metadata delete must stand, got %+v", videos)
	}
}

func TestDownload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Download(ctx, "missing.mp4")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if msg := services.UserMessage(err, ""); msg != "video file not found" {
		t.Fatalf("unexpected user message %q", msg)
	}

	f.objects.Put("final.mp4", nil)
	url, err := f.svc.Download(ctx, "final.mp4")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !strings.Contains(url, "ttl=3600") {
		t.Fatalf("expected one-hour presign TTL, got %q", url)
	}
}
