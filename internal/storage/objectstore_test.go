package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

// fakeS3 serves just enough of the S3 API for list, get, head-bucket and put.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]string
	puts    []string
}

func (f *fakeS3) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != f.bucket {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchBucket</Code><Message>missing</Message></Error>`)
		return
	}

	switch {
	case r.Method == http.MethodHead && key == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
		f.list(w, r.URL.Query().Get("prefix"))
	case r.Method == http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Length", fmt.Sprint(len(body)))
		w.Header().Set("Last-Modified", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Content-Type", "application/octet-stream")
		io.WriteString(w, body)
	case r.Method == http.MethodPut:
		_, _ = io.Copy(io.Discard, r.Body)
		f.puts = append(f.puts, key)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeS3) list(w http.ResponseWriter, prefix string) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>", f.bucket, prefix)
	for _, key := range []string{"reports/", "reports/a.json", "reports/b.pdf", "other/c.pdf"} {
		body, ok := f.objects[key]
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><LastModified>2026-01-02T03:04:05.000Z</LastModified><ETag>&quot;etag&quot;</ETag><Size>%d</Size><StorageClass>STANDARD</StorageClass></Contents>", key, len(body))
	}
	b.WriteString("</ListBucketResult>")
	w.Header().Set("Content-Type", "application/xml")
	io.WriteString(w, b.String())
}

func newFakeStore(t *testing.T) (*ObjectStore, *fakeS3) {
	t.Helper()
	fake := &fakeS3{
		bucket: "envio",
		objects: map[string]string{
			"reports/":       "",
			"reports/a.json": `{"keyTrends":{}}`,
			"reports/b.pdf":  "%PDF-1.3",
			"other/c.pdf":    "%PDF-1.3",
		},
	}
	srv := newHTTPTestServer(t, fake.handle)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	store, err := NewObjectStore(ObjectOptions{
		Endpoint:  u.Host,
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "us-east-1",
		Bucket:    "envio",
	})
	require.NoError(t, err)
	return store, fake
}

func TestObjectStore_FetchPrefix(t *testing.T) {
	store, _ := newFakeStore(t)

	blobs, err := store.Fetch(context.Background(), "s3://envio/reports/")
	require.NoError(t, err)
	require.Len(t, blobs, 2)

	assert.Equal(t, "a.json", blobs[0].Name)
	assert.Equal(t, `{"keyTrends":{}}`, string(blobs[0].Data))
	assert.NoError(t, blobs[0].Err)
	assert.Equal(t, "b.pdf", blobs[1].Name)
	assert.Equal(t, "%PDF-1.3", string(blobs[1].Data))
}

func TestObjectStore_FetchBadURI(t *testing.T) {
	store, _ := newFakeStore(t)
	_, err := store.Fetch(context.Background(), "envio/reports")
	assert.Error(t, err)
}

func TestObjectStore_Upload(t *testing.T) {
	store, fake := newFakeStore(t)

	loc, err := store.Upload(context.Background(), "exports/run.pdf", []byte("%PDF-1.3 test"))
	require.NoError(t, err)
	assert.Equal(t, "s3://envio/exports/run.pdf", loc)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"exports/run.pdf"}, fake.puts)
}

func TestObjectStore_UploadNeedsBucket(t *testing.T) {
	store, _ := newFakeStore(t)
	store.bucket = ""
	_, err := store.Upload(context.Background(), "x.pdf", []byte("x"))
	assert.Error(t, err)
}
