package mastodon

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lachuoi/mstd-random-restaurant/internal/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUploadMedia(t *testing.T) {
	image := []byte("jpeg bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v2/media", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "photo.jpg", header.Filename)
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		require.Equal(t, image, got)
		require.Equal(t, "tasty ramen", r.FormValue("description"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "113546"}`))
	}))
	defer srv.Close()

	client := NewClient(discardLogger(), srv.URL, "secret-token")
	resp, err := client.UploadMedia(image, "photo.jpg", "image/jpeg", "tasty ramen")
	require.NoError(t, err)
	require.NotNil(t, resp.ID)
	require.Equal(t, "113546", *resp.ID)
}

func TestUploadMedia_RejectedIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "file too large"}`))
	}))
	defer srv.Close()

	client := NewClient(discardLogger(), srv.URL, "token")
	_, err := client.UploadMedia([]byte("img"), "a.jpg", "image/jpeg", "")
	var statusErr *errs.UnexpectedStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
}

func TestPostStatus(t *testing.T) {
	var received StatusRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/statuses", r.URL.Path)
		require.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(discardLogger(), srv.URL, "secret-token")
	err := client.PostStatus(StatusRequest{
		Status:     "Some Restaurant\n123 Main St",
		Visibility: "public",
		Language:   "eng",
		MediaIDs:   []int64{11, 22},
	})
	require.NoError(t, err)
	require.Equal(t, "public", received.Visibility)
	require.Equal(t, "eng", received.Language)
	require.Equal(t, []int64{11, 22}, received.MediaIDs)
}
