package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestS3Store(t *testing.T, handler http.Handler) *S3Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), S3Options{
		Bucket:          "docs",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		UsePathStyle:    true,
		Encrypt:         true,
	}, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestS3Store_PutRequestsEncryption(t *testing.T) {
	var (
		gotPath string
		gotSSE  string
		gotType string
		gotBody []byte
	)
	store := newTestS3Store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSSE = r.Header.Get("X-Amz-Server-Side-Encryption")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))

	err := store.Put(context.Background(), "u1/c1/id_brief.pdf", bytes.NewReader([]byte("%PDF")), 4, "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "/docs/u1/c1/id_brief.pdf", gotPath)
	assert.Equal(t, "AES256", gotSSE)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "%PDF", string(gotBody))
}

func TestS3Store_PutMakesSingleAttempt(t *testing.T) {
	var calls atomic.Int32
	store := newTestS3Store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := store.Put(context.Background(), "u1/c1/id_x.txt", bytes.NewReader([]byte("x")), 1, "text/plain")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestS3Store_ListByPrefix(t *testing.T) {
	var gotPrefix string
	store := newTestS3Store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefix = r.URL.Query().Get("prefix")
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>docs</Name>
  <Prefix>u1/</Prefix>
  <KeyCount>2</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>u1/c1/a_one.pdf</Key><Size>3</Size></Contents>
  <Contents><Key>u1/c2/b_two.pdf</Key><Size>3</Size></Contents>
</ListBucketResult>`)
	}))

	keys, err := store.List(context.Background(), "u1/")
	require.NoError(t, err)
	assert.Equal(t, "u1/", gotPrefix)
	assert.Equal(t, []string{"u1/c1/a_one.pdf", "u1/c2/b_two.pdf"}, keys)
}

func TestS3Store_ListFailure(t *testing.T) {
	store := newTestS3Store(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := store.List(context.Background(), "u1/")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "list objects"))
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Options{Region: "us-east-1"}, zerolog.Nop())
	assert.Error(t, err)
}

type failingStore struct{ err error }

func (f failingStore) Put(context.Context, string, io.Reader, int64, string) error { return f.err }
func (f failingStore) List(context.Context, string) ([]string, error) { return nil, f.err }

func TestInstrumented_PassesThrough(t *testing.T) {
	store := Instrument(failingStore{err: assert.AnError}, "test")

	err := store.Put(context.Background(), "k", strings.NewReader(""), 0, "text/plain")
	assert.ErrorIs(t, err, assert.AnError)

	_, err = store.List(context.Background(), "p")
	assert.ErrorIs(t, err, assert.AnError)
}
