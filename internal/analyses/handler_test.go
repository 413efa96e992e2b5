package analyses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"seo-backend/internal/shared/config"
	"seo-backend/internal/shared/server/respond"
)

func newTestRouter(svc *Service, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(respond.MethodNotAllowed)
	NewHandler(svc, cfg).RegisterRoutes(r.Group("/api"))
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestMultiRefusesWithoutAllKeys(t *testing.T) {
	cfg := &config.Config{GeminiAPIKey: "set", OpenAIAPIKey: "", ClaudeAPIKey: "set"}
	fetcher := &stubFetcher{html: testPage}
	svc := newTestService(fetcher, threeClients(`{}`)...)
	r := newTestRouter(svc, cfg)

	w := postForm(r, "/api/analyses/multi", url.Values{"url": {"https://example.com/"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false {
		t.Fatalf("body = %v, want success=false", body)
	}
	debug, ok := body["debug"].(map[string]any)
	if !ok {
		t.Fatalf("debug = %#v", body["debug"])
	}
	if debug["gemini"] != true || debug["openai"] != false || debug["claude"] != true {
		t.Fatalf("debug = %v", debug)
	}
	if fetcher.calls != 0 {
		t.Fatal("page fetched despite missing keys")
	}
}

func TestMultiHappyPath(t *testing.T) {
	cfg := &config.Config{GeminiAPIKey: "a", OpenAIAPIKey: "b", ClaudeAPIKey: "c"}
	svc := newTestService(&stubFetcher{html: testPage}, threeClients(`{"improvements": []}`)...)
	r := newTestRouter(svc, cfg)

	w := postForm(r, "/api/analyses/multi", url.Values{"url": {"https://example.com/"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	results, ok := body["multiAIResults"].(map[string]any)
	if !ok || len(results) != 3 {
		t.Fatalf("multiAIResults = %#v", body["multiAIResults"])
	}
	if body["fromCache"] != false {
		t.Fatalf("fromCache = %v", body["fromCache"])
	}
}

func TestWrongMethodGets405JSON(t *testing.T) {
	cfg := &config.Config{}
	svc := newTestService(&stubFetcher{}, threeClients(`{}`)...)
	r := newTestRouter(svc, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/multi", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != false || body["message"] != "Method not allowed" {
		t.Fatalf("body = %v", body)
	}
}

func TestCheckEndpoint(t *testing.T) {
	cfg := &config.Config{GeminiAPIKey: "a", OpenAIAPIKey: "b", ClaudeAPIKey: "c"}
	svc := newTestService(&stubFetcher{html: testPage}, threeClients(`{"improvements": []}`)...)
	r := newTestRouter(svc, cfg)

	w := postForm(r, "/api/analyses/check", url.Values{"url": {"https://example.com/"}})
	body := decodeBody(t, w)
	if body["hasAnalysis"] != false {
		t.Fatalf("hasAnalysis = %v before any run", body["hasAnalysis"])
	}

	if _, err := svc.AnalyzeMulti(httptest.NewRequest(http.MethodGet, "/", nil).Context(),
		"https://example.com/", false); err != nil {
		t.Fatalf("AnalyzeMulti: %v", err)
	}

	w = postForm(r, "/api/analyses/check", url.Values{"url": {"https://example.com/"}})
	body = decodeBody(t, w)
	if body["hasAnalysis"] != true {
		t.Fatalf("hasAnalysis = %v after run", body["hasAnalysis"])
	}
	if _, ok := body["analysisDate"]; !ok {
		t.Fatal("analysisDate missing")
	}
}
