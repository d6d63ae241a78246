package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafsal3/VideoGen-v1/internal/render/domain"
)

func TestStartJob(t *testing.T) {
	var gotPath string
	var gotReq StartJobRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(StartJobResponse{
			Filename:    "proj-1-final.mp4",
			DownloadURL: "/videos/proj-1-final.mp4",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.StartJob(context.Background(), "newspaper", StartJobRequest{
		ProjectID:   "proj-1",
		Parameters:  map[string]interface{}{"headline": "Hello"},
		Quality:     "1080p",
		CallbackURL: "http://api/render/callback/proj-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "/render/newspaper", gotPath)
	assert.Equal(t, "proj-1", gotReq.ProjectID)
	assert.Equal(t, "http://api/render/callback/proj-1", gotReq.CallbackURL)
	assert.Equal(t, "proj-1-final.mp4", resp.Filename)
}

func TestStartJobFilenameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.StartJob(context.Background(), "default", StartJobRequest{ProjectID: "proj-9"})
	require.NoError(t, err)
	assert.Equal(t, "proj-9.mp4", resp.Filename)
}

func TestStartJobEngineError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.StartJob(context.Background(), "default", StartJobRequest{ProjectID: "proj-1"})
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestStartJobEngineDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.StartJob(context.Background(), "default", StartJobRequest{ProjectID: "proj-1"})
	assert.ErrorIs(t, err, domain.ErrEngineUnavailable)
}

func TestCheckReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/videos/ready.mp4" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	ready, err := client.CheckReady(context.Background(), "ready.mp4")
	require.NoError(t, err)
	assert.True(t, ready)

	ready, err = client.CheckReady(context.Background(), "pending.mp4")
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestArtifactURLs(t *testing.T) {
	client := NewClient("http://engine:8001")

	assert.Equal(t, "http://engine:8001/videos/out.mp4", client.VideoURL("out.mp4"))
	assert.Equal(t, "http://engine:8001/videos/out.jpg", client.ThumbnailURL("out.mp4"))
}
