package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"movierec/internal/models"
	"movierec/internal/recommend"
	"movierec/internal/service"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func testRouter(t *testing.T, rpm int) http.Handler {
	t.Helper()
	idx, err := recommend.Build([]models.Movie{
		{Title: "Avatar", Genres: "Action Science Fiction", Keywords: "space war", Director: "James Cameron"},
		{Title: "Aliens", Genres: "Horror Action Science Fiction", Keywords: "space marine", Director: "James Cameron"},
		{Title: "Titanic", Genres: "Drama Romance", Keywords: "ship iceberg", Director: "James Cameron"},
		{Title: "Batman", Genres: "Fantasy Action", Keywords: "dc comics", Director: "Tim Burton"},
	}, recommend.Options{})
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	recs := service.NewRecommendService(idx, nil, time.Minute)
	return NewRouter(RouterDeps{
		Recommend:    recs,
		Movies:       service.NewMovieService(idx),
		Admin:        service.NewAdminMaintenanceService(idx, "csv", nil),
		Auth:         service.NewAuthService("admin", string(hash), testSecret, time.Hour),
		JWTSecret:    testSecret,
		RateLimitRPM: rpm,
	})
}

func do(t *testing.T, h http.Handler, method, target, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes_Status(t *testing.T) {
	h := testRouter(t, 0)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"health", "/health", http.StatusOK},
		{"metrics", "/metrics", http.StatusOK},
		{"recommendations", "/recommendations?q=Avatr", http.StatusOK},
		{"empty query", "/recommendations?q=", http.StatusNoContent},
		{"blank query", "/recommendations?q=%20%20", http.StatusNotFound},
		{"no match", "/recommendations?q=zzzzzzzzzzzz", http.StatusNotFound},
		{"movie", "/movies/2", http.StatusOK},
		{"movie out of range", "/movies/99", http.StatusNotFound},
		{"movie bad idx", "/movies/abc", http.StatusBadRequest},
		{"similar", "/movies/0/similar?k=1", http.StatusOK},
		{"similar out of range", "/movies/-1/similar", http.StatusNotFound},
		{"search", "/movies/search?q=Batmn", http.StatusOK},
		{"page", "/", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "", "")
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d (body %q)", tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestGetRecommendations_Body(t *testing.T) {
	h := testRouter(t, 0)
	rec := do(t, h, http.MethodGet, "/recommendations?q=Avatar&k=2", "", "")

	var res models.RecResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if res.Match != "Avatar" || res.MatchIndex != 0 {
		t.Errorf("match = %q/%d", res.Match, res.MatchIndex)
	}
	if len(res.Items) != 2 || res.Items[0].Title != "Aliens" {
		t.Errorf("items = %+v", res.Items)
	}
	for _, it := range res.Items {
		if it.Index == 0 {
			t.Error("matched movie recommended to itself")
		}
	}
}

func TestMovieRoutes_Body(t *testing.T) {
	h := testRouter(t, 0)

	var m models.Movie
	if err := json.Unmarshal(do(t, h, http.MethodGet, "/movies/2", "", "").Body.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m.Title != "Titanic" {
		t.Errorf("movie 2 = %q", m.Title)
	}

	var items []models.RecItem
	if err := json.Unmarshal(do(t, h, http.MethodGet, "/movies/0/similar?k=1", "", "").Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "Aliens" {
		t.Errorf("similar = %+v", items)
	}

	var cands []models.TitleCandidate
	if err := json.Unmarshal(do(t, h, http.MethodGet, "/movies/search?q=Batmn", "", "").Body.Bytes(), &cands); err != nil {
		t.Fatal(err)
	}
	if len(cands) == 0 || cands[0].Title != "Batman" {
		t.Errorf("search = %+v", cands)
	}
}

func TestPage(t *testing.T) {
	h := testRouter(t, 0)

	tests := []struct {
		name     string
		target   string
		contains []string
		absent   []string
	}{
		{"bare", "/", []string{"<form", "Recommend"}, []string{"Movie not found!", "Movies similar to"}},
		{"empty movie", "/?movie=", nil, []string{"Movie not found!", "Movies similar to"}},
		{"found", "/?movie=Avatr", []string{"Movies similar to Avatar:", `<div class="movie-card">Aliens</div>`}, []string{"Movie not found!"}},
		{"not found", "/?movie=zzzzzzzzzzzz", []string{"Movie not found!"}, []string{"Movies similar to"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
			body := rec.Body.String()
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(body, s) {
					t.Errorf("body unexpectedly has %q", s)
				}
			}
		})
	}
}

func TestAdminRoutes_Auth(t *testing.T) {
	h := testRouter(t, 0)

	admin, err := service.SignToken(testSecret, "ops", service.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	viewer, _ := service.SignToken(testSecret, "bob", "viewer", time.Hour)
	forged, _ := service.SignToken("other-secret", "ops", service.RoleAdmin, time.Hour)
	expired, _ := service.SignToken(testSecret, "ops", service.RoleAdmin, -time.Minute)

	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/admin/catalog/summary", "", http.StatusUnauthorized},
		{"wrong secret", http.MethodGet, "/admin/catalog/summary", forged, http.StatusUnauthorized},
		{"expired", http.MethodGet, "/admin/catalog/summary", expired, http.StatusUnauthorized},
		{"not admin", http.MethodGet, "/admin/catalog/summary", viewer, http.StatusForbidden},
		{"summary", http.MethodGet, "/admin/catalog/summary", admin, http.StatusOK},
		{"history without mongo", http.MethodGet, "/admin/history", admin, http.StatusServiceUnavailable},
		{"export without mongo", http.MethodPost, "/admin/similarities/export?k=5", admin, http.StatusServiceUnavailable},
		{"stored neighbours without mongo", http.MethodGet, "/admin/similarities/0", admin, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.token, "")
			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.target, rec.Code, tt.want)
			}
		})
	}
}

func TestAdminSummary_Body(t *testing.T) {
	h := testRouter(t, 0)
	token, _ := service.SignToken(testSecret, "ops", service.RoleAdmin, time.Hour)

	var s models.CatalogSummary
	if err := json.Unmarshal(do(t, h, http.MethodGet, "/admin/catalog/summary", token, "").Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Movies != 4 || s.Source != "csv" || s.VocabularySize == 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestAdminRoutes_NoSecret(t *testing.T) {
	idx, err := recommend.Build([]models.Movie{
		{Title: "Avatar", Genres: "Action", Keywords: "space"},
		{Title: "Heat", Genres: "Crime", Keywords: "heist"},
	}, recommend.Options{})
	if err != nil {
		t.Fatal(err)
	}
	h := NewRouter(RouterDeps{
		Recommend: service.NewRecommendService(idx, nil, 0),
		Movies:    service.NewMovieService(idx),
		Admin:     service.NewAdminMaintenanceService(idx, "csv", nil),
		Auth:      service.NewAuthService("admin", "$2a$04$hash", "", time.Hour),
	})

	// a token signed with the empty key must not open anything
	token, _ := service.SignToken("", "ops", service.RoleAdmin, time.Hour)
	if got := do(t, h, http.MethodGet, "/admin/catalog/summary", token, "").Code; got != http.StatusNotFound {
		t.Errorf("summary without JWT_SECRET = %d, want 404", got)
	}
	if got := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"x"}`).Code; got != http.StatusServiceUnavailable {
		t.Errorf("login without JWT_SECRET = %d, want 503", got)
	}
	if got := do(t, h, http.MethodGet, "/health", "", "").Code; got != http.StatusOK {
		t.Errorf("health = %d", got)
	}
}

func TestLogin(t *testing.T) {
	h := testRouter(t, 0)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"ok", `{"username":"admin","password":"hunter2"}`, http.StatusOK},
		{"bad password", `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"bad body", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/auth/login", "", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK {
				return
			}
			var out loginResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatal(err)
			}
			if got := do(t, h, http.MethodGet, "/admin/catalog/summary", out.Token, "").Code; got != http.StatusOK {
				t.Errorf("summary with login token = %d", got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := testRouter(t, 1)

	if got := do(t, h, http.MethodGet, "/recommendations?q=Avatar", "", "").Code; got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := do(t, h, http.MethodGet, "/recommendations?q=Avatar", "", "").Code; got != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", got)
	}
	if got := do(t, h, http.MethodGet, "/health", "", "").Code; got != http.StatusOK {
		t.Errorf("health is not limited, got %d", got)
	}
}

func dialWS(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/recommendations" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readTypes(t *testing.T, conn *websocket.Conn, n int) []map[string]any {
	t.Helper()
	out := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		out = append(out, msg)
	}
	return out
}

func TestRecommendationsWS_OneShot(t *testing.T) {
	srv := httptest.NewServer(testRouter(t, 0))
	defer srv.Close()

	conn := dialWS(t, srv, "?q=Avatr&k=2")
	msgs := readTypes(t, conn, 3)

	want := []string{"start", "match", "recommendations"}
	for i, w := range want {
		if msgs[i]["type"] != w {
			t.Errorf("message %d type = %v, want %s", i, msgs[i]["type"], w)
		}
	}
	if msgs[1]["match"] != "Avatar" {
		t.Errorf("match = %v", msgs[1]["match"])
	}
	items, _ := msgs[2]["items"].([]any)
	if len(items) != 2 {
		t.Errorf("items = %v", msgs[2]["items"])
	}
}

func TestRecommendationsWS_Session(t *testing.T) {
	srv := httptest.NewServer(testRouter(t, 0))
	defer srv.Close()

	conn := dialWS(t, srv, "")

	if err := conn.WriteJSON(map[string]any{"q": "zzzzzzzzzzzz"}); err != nil {
		t.Fatal(err)
	}
	msgs := readTypes(t, conn, 2)
	if msgs[0]["type"] != "start" || msgs[1]["type"] != "not_found" {
		t.Errorf("not found flow = %v", msgs)
	}

	// empty queries produce no messages, so the next reply belongs to Batman
	if err := conn.WriteJSON(map[string]any{"q": ""}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(map[string]any{"q": "Batman", "k": 1}); err != nil {
		t.Fatal(err)
	}
	msgs = readTypes(t, conn, 3)
	if msgs[0]["type"] != "start" || msgs[0]["query"] != "Batman" {
		t.Errorf("start = %v", msgs[0])
	}
	if msgs[2]["type"] != "recommendations" {
		t.Errorf("last = %v", msgs[2])
	}
}
