package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/openvoice/voiceroom/internal/config"
	"github.com/openvoice/voiceroom/internal/service/local"
)

func TestClientTokenCookiePinned(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Mode: "release", Secret: "test-secret"}
	r := SetupRouter(cfg, local.NewHub())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("empty directory rendered %q", body)
	}

	var pinned bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "ct" && c.Value != "" {
			pinned = true
		}
	}
	if !pinned {
		t.Fatal("client token cookie not set")
	}
}
