package testsupport

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// FakeObjectStore is an in-memory object store keyed by object name. Presign
// calls return deterministic URLs so handlers can be asserted end to end.
type FakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	errs    map[string]error

	// PresignBase is the URL prefix for presigned URLs. Point it at a stub
	// HTTP server to exercise the PUT leg end to end.
	PresignBase string

	Uploads   []string
	Deletes   []string
	Downloads []string
}

// NewFakeObjectStore seeds the store with the given keys.
func NewFakeObjectStore(keys ...string) *FakeObjectStore {
	objects := make(map[string][]byte, len(keys))
	for _, key := range keys {
		objects[key] = []byte("stub")
	}
	return &FakeObjectStore{
		objects:     objects,
		errs:        make(map[string]error),
		PresignBase: "https://objects.test",
	}
}

// FailWith makes the named operation ("presign-download", "presign-upload",
// "upload", "delete") return err on every subsequent call.
func (f *FakeObjectStore) FailWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

// Put stores an object directly, bypassing the Upload bookkeeping.
func (f *FakeObjectStore) Put(key string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
}

// Has reports whether the key currently exists.
func (f *FakeObjectStore) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *FakeObjectStore) Exists(_ context.Context, key string) bool {
	return f.Has(key)
}

func (f *FakeObjectStore) PresignDownload(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs["presign-download"]; err != nil {
		return "", err
	}
	f.Downloads = append(f.Downloads, key)
	return fmt.Sprintf("%s/download/%s?ttl=%d", f.PresignBase, key, int(ttl.Seconds())), nil
}

func (f *FakeObjectStore) PresignUpload(_ context.Context, key, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs["presign-upload"]; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/upload/%s?type=%s", f.PresignBase, key, contentType), nil
}

func (f *FakeObjectStore) Upload(_ context.Context, key string, body io.Reader, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs["upload"]; err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.Uploads = append(f.Uploads, key)
	return nil
}

func (f *FakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs["delete"]; err != nil {
		return err
	}
	delete(f.objects, key)
	f.Deletes = append(f.Deletes, key)
	return nil
}
