package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eoralab/casechat/internal/backend"
	"github.com/eoralab/casechat/internal/config"
	"github.com/eoralab/casechat/internal/domain"
	"github.com/eoralab/casechat/internal/service"
)

func newTestRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Chat.MaxQuestionLen = 1000

	client := backend.New(srv.URL, 0, nil)
	gatewayService := service.NewGatewayService(cfg, client, nil)

	r := gin.New()
	NewHandler(gatewayService).RegisterRoutes(r.Group("/api"))
	return r, srv
}

func postAsk(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAskForwardsToBackend(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		var askReq domain.AskRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&askReq))
		assert.Equal(t, "hello", askReq.Question)
		assert.Equal(t, "session_1_abc", askReq.SessionID)

		json.NewEncoder(w).Encode(domain.AskResponse{
			Answer:  "Hi",
			Sources: []domain.Source{{URL: "http://x", Title: "Doc"}},
		})
	})

	w := postAsk(r, `{"question":"hello","session_id":"session_1_abc"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Hi", body["answer"])
	assert.Equal(t, "hello", body["question"])
	assert.Equal(t, "session_1_abc", body["session_id"])
}

func TestAskMissingQuestion(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("backend must not be called")
	})

	for _, body := range []string{`{}`, `not json`, `{"session_id":"s"}`} {
		w := postAsk(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Вопрос не предоставлен", decodeBody(t, w)["error"])
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("backend must not be called")
	})

	w := postAsk(r, `{"question":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Вопрос не может быть пустым", decodeBody(t, w)["error"])
}

func TestAskQuestionTooLong(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("backend must not be called")
	})

	long := strings.Repeat("ы", 1001)
	payload, err := json.Marshal(map[string]string{"question": long})
	require.NoError(t, err)

	w := postAsk(r, string(payload))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Вопрос слишком длинный (максимум 1000 символов)", decodeBody(t, w)["error"])
}

func TestAskDefaultsSessionToClientIP(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		var askReq domain.AskRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&askReq))
		assert.NotEmpty(t, askReq.SessionID)
		json.NewEncoder(w).Encode(domain.AskResponse{Answer: "ok"})
	})

	w := postAsk(r, `{"question":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["session_id"])
}

func TestAskPassesThroughBackendError(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "overloaded"})
	})

	w := postAsk(r, `{"question":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "overloaded", decodeBody(t, w)["error"])
}

func TestAskBackendUnreachable(t *testing.T) {
	r, srv := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {})
	srv.Close()

	w := postAsk(r, `{"question":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Произошла внутренняя ошибка сервера", decodeBody(t, w)["error"])
}

func TestStats(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/api/stats", req.URL.Path)
		json.NewEncoder(w).Encode(domain.Stats{TotalChunks: 42})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 42, decodeBody(t, w)["total_chunks"])
}

func TestStatsBackendDown(t *testing.T) {
	r, srv := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {})
	srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["error"])
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/api/health", req.URL.Path)
		json.NewEncoder(w).Encode(domain.Health{Status: "healthy", Stats: &domain.Stats{TotalChunks: 7}})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestHealthBackendDown(t *testing.T) {
	r, srv := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {})
	srv.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "unhealthy", decodeBody(t, w)["status"])
}
