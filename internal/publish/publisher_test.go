package publish

import (
	"context"
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

	"lamina/internal/gallery"
)

func TestObjectKey(t *testing.T) {
	img := gallery.SavedImage{ID: "lamina-1", Type: gallery.KindImproved}
	assert.Equal(t, "improved/lamina-1.jpg", ObjectKey("", img))
	assert.Equal(t, "posts/improved/lamina-1.jpg", ObjectKey("posts", img))
}

func TestNew_RequiresEndpointAndBucket(t *testing.T) {
	_, err := New(Options{Endpoint: "localhost:9000"})
	assert.Error(t, err)
	_, err = New(Options{Bucket: "b"})
	assert.Error(t, err)
}

type putRecord struct {
	Path        string
	ContentType string
	Body        []byte
}

// fakeS3 accepts path-style PUTs and answers HEAD bucket with 200.
type fakeS3 struct {
	mu   sync.Mutex
	puts []putRecord
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.puts = append(f.puts, putRecord{Path: r.URL.Path, ContentType: r.Header.Get("Content-Type"), Body: body})
		f.mu.Unlock()
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	p, err := New(Options{
		Endpoint:  u.Host,
		Bucket:    "laminas",
		AccessKey: "minio",
		SecretKey: "minio123",
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.EnsureBucket(ctx))

	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	img := gallery.Collection{}.NewImage(gallery.KindNormal, jpeg, time.UnixMilli(5))

	res, err := p.Publish(ctx, img)
	require.NoError(t, err)
	assert.Equal(t, "normal/lamina-5.jpg", res.Key)
	assert.Equal(t, "laminas", res.Bucket)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.puts, 1)
	assert.True(t, strings.HasSuffix(fake.puts[0].Path, "/laminas/normal/lamina-5.jpg"), fake.puts[0].Path)
	assert.Equal(t, "image/jpeg", fake.puts[0].ContentType)
}
