package webclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hqslab/blackbox/pkg/webclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_Fields(t *testing.T) {
	s := webclient.NewSession("https://api.example.com", nil)

	assert.Equal(t, "https://api.example.com", s.BaseURL)
	assert.Nil(t, s.Client)
	assert.Nil(t, s.Headers)
}

func TestNewRequest_SessionHeaders(t *testing.T) {
	s := webclient.NewSession("https://api.example.com", nil)
	s.Headers = map[string]string{
		"user-agent": "test-agent",
		"x-custom":   "value",
	}

	req, err := s.NewRequest(context.Background(), http.MethodGet, "/chat", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/chat", req.URL.String())
	assert.Equal(t, "test-agent", req.Header.Get("user-agent"))
	assert.Equal(t, "value", req.Header.Get("x-custom"))
}

func TestNewRequest_FingerprintHeaders(t *testing.T) {
	s := webclient.NewSession("https://api.example.com", nil)
	s.Headers = webclient.FingerprintHeaders("https://www.example.com")

	req, err := s.NewRequest(context.Background(), http.MethodPost, "/chat", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com", req.Header.Get("origin"))
	assert.Equal(t, "https://www.example.com/", req.Header.Get("referer"))
	assert.Equal(t, "same-origin", req.Header.Get("sec-fetch-site"))
	assert.Contains(t, req.Header.Get("user-agent"), "Chrome/131")
}

func TestFingerprintHeaders_Profile(t *testing.T) {
	h := webclient.FingerprintHeaders("https://www.example.com")

	assert.Equal(t, "application/json", h["content-type"])
	assert.Equal(t, "*/*", h["accept"])
	assert.Contains(t, h["sec-ch-ua"], `"Chromium";v="131"`)
	assert.Equal(t, `"Windows"`, h["sec-ch-ua-platform"])
	assert.Equal(t, "?0", h["sec-ch-ua-mobile"])
}

func TestDo_Passthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	req, err := s.NewRequest(context.Background(), http.MethodGet, "/ping", nil)
	require.NoError(t, err)

	resp, err := s.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestDo_DefaultClientKeepsCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("challenge"); err != nil {
			http.SetCookie(w, &http.Cookie{Name: "challenge", Value: "cleared"})
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte("welcome back"))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, nil)

	for i := 0; i < 2; i++ {
		req, err := s.NewRequest(context.Background(), http.MethodGet, "/", nil)
		require.NoError(t, err)

		resp, err := s.Do(req)
		require.NoError(t, err)

		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if i == 1 {
			assert.Equal(t, "welcome back", string(body))
		}
	}
}

func TestPostJSON_Success(t *testing.T) {
	type reqBody struct {
		Query string `json:"query"`
	}
	type respBody struct {
		ID string `json:"id"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got reqBody
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "hello", got.Query)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(respBody{ID: "resp-123"})
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	var dest respBody
	err := s.PostJSON(context.Background(), "/check", reqBody{Query: "hello"}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "resp-123", dest.ID)
}

func TestPostJSON_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"blocked"}`))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	err := s.PostJSON(context.Background(), "/check", map[string]string{"query": "hello"}, nil)

	var statusErr *webclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "blocked")
	assert.Contains(t, err.Error(), "unexpected status 401")
}

func TestPostJSON_MarshalError(t *testing.T) {
	s := webclient.NewSession("https://api.example.com", nil)

	err := s.PostJSON(context.Background(), "/check", make(chan int), nil)
	assert.ErrorContains(t, err, "marshal payload")
}

func TestPostJSON_NilDest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	err := s.PostJSON(context.Background(), "/check", map[string]string{"query": "hello"}, nil)
	assert.NoError(t, err)
}

func TestPostStream_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte("first line\nsecond line\n"))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	body, err := s.PostStream(context.Background(), "/chat", map[string]string{"query": "hello"})
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "first line\nsecond line\n", string(data))
}

func TestPostStream_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	body, err := s.PostStream(context.Background(), "/chat", map[string]string{"query": "hello"})
	require.Error(t, err)
	assert.Nil(t, body)

	var statusErr *webclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, "upstream exploded", statusErr.Body)
}

func TestPostStream_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := webclient.NewSession(srv.URL, srv.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.PostStream(ctx, "/chat", map[string]string{"query": "hello"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
