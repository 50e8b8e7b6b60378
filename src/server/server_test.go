package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whisperchain/whisperchain/src/database"
	"github.com/whisperchain/whisperchain/src/identity"
	"github.com/whisperchain/whisperchain/src/whisper"
)

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, collection string) ([]byte, error) {
	return nil, errors.New("unreachable")
}

func (brokenStore) Set(ctx context.Context, collection string, value []byte) error {
	return errors.New("unreachable")
}

func (brokenStore) Close() error { return nil }

type response struct {
	Status string                     `json:"status"`
	Error  string                     `json:"error"`
	Data   map[string]json.RawMessage `json:"data"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(store database.Store) *Server {
	ids := identity.Provider{WalletAddress: "midnight1testwalletaddress00"}
	return New(whisper.New(store, ids), ids, 0)
}

func do(t *testing.T, h http.Handler, method, url, body string) (int, response) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var r response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &r))
	}
	return w.Code, r
}

func TestPing(t *testing.T) {
	code, r := do(t, newTestServer(database.NewMemory()).Handler(), "GET", "/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", r.Status)
	assert.JSONEq(t, `"ok"`, string(r.Data["store"]))
	assert.JSONEq(t, `0`, string(r.Data["whispers"]))

	code, r = do(t, newTestServer(brokenStore{}).Handler(), "GET", "/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"offline"`, string(r.Data["store"]))
}

func TestPostNeedsWallet(t *testing.T) {
	h := newTestServer(database.NewMemory()).Handler()
	code, r := do(t, h, "POST", "/api/v1/whispers", `{"text":"hello"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "error", r.Status)
}

func TestWhisperFlow(t *testing.T) {
	s := newTestServer(database.NewMemory())
	h := s.Handler()

	code, r := do(t, h, "POST", "/api/v1/wallet", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"midnight1testwalletaddress00"`, string(r.Data["address"]))
	assert.Equal(t, "midnight1testwalletaddress00", s.Wallet())

	code, _ = do(t, h, "POST", "/api/v1/whispers", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, h, "POST", "/api/v1/whispers", `{"text":"`+strings.Repeat("a", whisper.MaxLength+1)+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, r = do(t, h, "POST", "/api/v1/whispers", `{"text":"thanks for the help"}`)
	require.Equal(t, http.StatusCreated, code)
	var posted whisper.Whisper
	require.Nil(t, json.Unmarshal(r.Data["whisper"], &posted))
	assert.Equal(t, "thanks for the help", posted.Text())

	code, r = do(t, h, "POST", "/api/v1/whispers/0/reactions/moon", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"heart":0,"moon":1,"flower":0}`, string(r.Data["reaction_counts"]))
	code, r = do(t, h, "POST", "/api/v1/whispers/0/reactions/heart", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `1`, string(r.Data["count"]))
	assert.JSONEq(t, `2`, string(r.Data["total"]))

	code, _ = do(t, h, "POST", "/api/v1/whispers/0/reactions/bogus", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, h, "POST", "/api/v1/whispers/x/reactions/moon", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, h, "POST", "/api/v1/whispers/7/reactions/moon", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, r = do(t, h, "GET", "/api/v1/whispers", "")
	require.Equal(t, http.StatusOK, code)
	var ws []whisper.Whisper
	require.Nil(t, json.Unmarshal(r.Data["whispers"], &ws))
	require.Len(t, ws, 1)
	assert.Equal(t, int64(1), ws[0].ReactionCounts.Moon)
}

func TestSignup(t *testing.T) {
	s := newTestServer(database.NewMemory())
	h := s.Handler()

	for _, body := range []string{`{"username":""}`, `{"username":"   "}`, `{"username":"<b></b>"}`, `{}`, `not json`} {
		code, r := do(t, h, "POST", "/api/v1/signup", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.Equal(t, "error", r.Status)
	}
	code, _ := do(t, h, "POST", "/api/v1/signup", `{"username":"`+strings.Repeat("n", MaxUsernameLength+1)+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "", s.Username())

	code, r := do(t, h, "POST", "/api/v1/signup", `{"username":"  <i>luna</i> "}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"luna"`, string(r.Data["username"]))
	assert.Equal(t, "luna", s.Username())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "Welcome back, luna")
	assert.NotContains(t, w.Body.String(), "Choose a username")
}

func TestCORS(t *testing.T) {
	h := newTestServer(database.NewMemory()).Handler()
	req := httptest.NewRequest("GET", "/api/v1/whispers", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWall(t *testing.T) {
	s := newTestServer(database.NewMemory())
	ctx := context.Background()
	for _, text := range []string{"older whisper", "newer whisper"} {
		_, err := s.whispers.Compose(ctx, text)
		require.Nil(t, err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Wall of Whispers (2)")
	assert.Contains(t, body, "0 reactions")
	assert.Contains(t, body, "Choose a username")
	assert.True(t, strings.Index(body, "newer whisper") < strings.Index(body, "older whisper"))

	_, err := s.whispers.Compose(ctx, "thanks for <everything> today")
	require.Nil(t, err)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Contains(t, w.Body.String(), "thanks for &lt;everything&gt; today")
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestWallOffline(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	newTestServer(brokenStore{}).Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "offline")
	assert.Contains(t, w.Body.String(), "No whispers yet")
}

func TestRateLimit(t *testing.T) {
	ids := identity.Provider{}
	s := New(whisper.New(database.NewMemory(), ids), ids, 1)
	h := s.Handler()
	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		code, _ := do(t, h, "POST", "/api/v1/whispers/0/reactions/heart", "")
		codes[code]++
	}
	assert.True(t, codes[http.StatusTooManyRequests] > 0)
}
