package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const moderationPath = "/photos/:photo_id/approve"

// helper: new Echo with the middleware and a moderation-shaped route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(IdempotencyMiddleware(rdb, ttl))
	e.POST(moderationPath, handler)
	e.GET("/photos", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

// simple handler to exercise respRecorder capture & saveFinal
func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"status": "approved"})
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/photos", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okHandler)

	target := "/photos/cccccccccccccccccccccccccccccccc/approve"

	valid := map[string]string{
		"Ax-Request-Id":  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At":  time.Now().UTC().Format(time.RFC3339),
		"Ax-Operator-Id": "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}

	cases := []struct {
		name string
		hdr  map[string]string
	}{
		{"missing Ax-Request-Id", map[string]string{
			"Ax-Request-At":  valid["Ax-Request-At"],
			"Ax-Operator-Id": valid["Ax-Operator-Id"],
		}},
		{"invalid Ax-Request-Id", map[string]string{
			"Ax-Request-Id":  "NOT-VALID",
			"Ax-Request-At":  valid["Ax-Request-At"],
			"Ax-Operator-Id": valid["Ax-Operator-Id"],
		}},
		{"invalid Ax-Request-At", map[string]string{
			"Ax-Request-Id":  valid["Ax-Request-Id"],
			"Ax-Request-At":  "not-a-time",
			"Ax-Operator-Id": valid["Ax-Operator-Id"],
		}},
		{"skewed Ax-Request-At", map[string]string{
			"Ax-Request-Id":  valid["Ax-Request-Id"],
			"Ax-Request-At":  time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339),
			"Ax-Operator-Id": valid["Ax-Operator-Id"],
		}},
		{"missing Ax-Operator-Id", map[string]string{
			"Ax-Request-Id": valid["Ax-Request-Id"],
			"Ax-Request-At": valid["Ax-Request-At"],
		}},
		{"invalid Ax-Operator-Id", map[string]string{
			"Ax-Request-Id":  valid["Ax-Request-Id"],
			"Ax-Request-At":  valid["Ax-Request-At"],
			"Ax-Operator-Id": "not32hex",
		}},
	}

	for _, tc := range cases {
		rec := doReq(t, e, http.MethodPost, target, mkJSONBody(t, map[string]int{"x": 1}), tc.hdr)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s => want 400, got %d", tc.name, rec.Code)
		}
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okHandler)

	target := "/photos/cccccccccccccccccccccccccccccccc/approve"
	h := map[string]string{
		"Ax-Request-Id":  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At":  time.Now().UTC().Format(time.RFC3339),
		"Ax-Operator-Id": "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}

	// First request -> goes through the handler
	rec1 := doReq(t, e, http.MethodPost, target, mkJSONBody(t, map[string]any{}), h)
	if rec1.Code != http.StatusOK {
		t.Fatalf("first request => want 200, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// Retry with SAME headers & body -> replays the stored response
	rec2 := doReq(t, e, http.MethodPost, target, mkJSONBody(t, map[string]any{}), h)
	if rec2.Code != http.StatusOK {
		t.Fatalf("replay => want 200, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okHandler)

	method := http.MethodPost
	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	operatorID := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	body := []byte(`{"x":1}`)

	// Seed provisional "in-progress" entry so SetNX fails and loadEntry
	// sees InProgress=true.
	key := buildKey(method, moderationPath, operatorID, reqID)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := provisionalSet(context.Background(), rdb, key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	h := map[string]string{
		"Ax-Request-Id":  reqID,
		"Ax-Request-At":  time.Now().UTC().Format(time.RFC3339),
		"Ax-Operator-Id": operatorID,
	}
	rec := doReq(t, e, method, "/photos/cccccccccccccccccccccccccccccccc/approve", bytes.NewReader(body), h)

	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okHandler)

	method := http.MethodPost
	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	operatorID := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	body1 := []byte(`{"x":1}`)
	body2 := []byte(`{"x":2}`)

	key := buildKey(method, moderationPath, operatorID, reqID)
	final := idempEntry{
		InProgress:  false,
		Code:        http.StatusOK,
		Body:        []byte(`{"status":"approved"}`),
		BodySHA256:  bodyHash(body1),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := saveFinal(context.Background(), rdb, key, final, time.Minute*5); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	h := map[string]string{
		"Ax-Request-Id":  reqID,
		"Ax-Request-At":  time.Now().UTC().Format(time.RFC3339),
		"Ax-Operator-Id": operatorID,
	}
	rec := doReq(t, e, method, "/photos/cccccccccccccccccccccccccccccccc/approve", bytes.NewReader(body2), h)

	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	// Client pointing at a closed address → SetNX error
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	e := setupEcho(rdb, 30*time.Second, okHandler)

	h := map[string]string{
		"Ax-Request-Id":  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At":  time.Now().UTC().Format(time.RFC3339),
		"Ax-Operator-Id": "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	}
	rec := doReq(t, e, http.MethodPost, "/photos/cccccccccccccccccccccccccccccccc/approve", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store unavailable => want 503, got %d", rec.Code)
	}
}
