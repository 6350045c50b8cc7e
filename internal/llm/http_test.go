package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homeward-labs/docintel/internal/common"
)

func TestSendJSONClassifiesStatusFailures(t *testing.T) {
	cases := map[string]struct {
		status int
		want   error
	}{
		"unauthorized":      {http.StatusUnauthorized, common.ErrRemoteAuth},
		"forbidden":         {http.StatusForbidden, common.ErrRemoteAuth},
		"payload too large": {http.StatusRequestEntityTooLarge, common.ErrRemotePayload},
		"server error":      {http.StatusInternalServerError, common.ErrRemoteStatus},
		"rate limited":      {http.StatusTooManyRequests, common.ErrRemoteStatus},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":"nope"}`))
			}))
			defer srv.Close()

			raw, status, err := SendJSON(context.Background(), srv.Client(), srv.URL, map[string]string{"q": "x"}, nil, nil)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, common.ErrRemoteService) {
				t.Error("sub-reason must also match the generic remote-service kind")
			}
			if status != tc.status {
				t.Errorf("status = %d, want %d", status, tc.status)
			}
			if len(raw) == 0 {
				t.Error("response body not returned alongside the error")
			}
		})
	}
}

func TestSendJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := SendJSON(ctx, srv.Client(), srv.URL, map[string]string{}, nil, nil)
	if !errors.Is(err, common.ErrRemoteTimeout) {
		t.Fatalf("err = %v, want ErrRemoteTimeout", err)
	}
}

func TestSendJSONOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if got := r.Header.Get("X-Custom"); got != "yes" {
			t.Errorf("custom header = %q", got)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	raw, status, err := SendJSON(context.Background(), srv.Client(), srv.URL,
		map[string]string{"q": "x"}, map[string]string{"X-Custom": "yes"}, nil)
	if err != nil {
		t.Fatalf("SendJSON: %v", err)
	}
	if status != http.StatusOK || string(raw) != `{"ok":true}` {
		t.Errorf("status = %d, raw = %s", status, raw)
	}
}
