package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/homeward-labs/docintel/internal/common"
	"github.com/homeward-labs/docintel/internal/llm"
)

func chatResponse(content string) string {
	body := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func newTestClient(url string) *Client {
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: url,
		Timeout: 5 * time.Second,
	}, nil)
}

func TestAssessDocumentOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatResponse(
			`{"summary":"Payslip is consistent.","risk_level":"low","confidence":0.9}`)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out, raw, err := c.AssessDocument(context.Background(), llm.AssessRequest{
		Text:         "Gross: $5,000.00",
		Filename:     "payslip.pdf",
		DocumentType: "income_document",
		Fields:       map[string]string{"gross_income": "5,000.00"},
	})
	if err != nil {
		t.Fatalf("AssessDocument: %v", err)
	}
	if out.Summary != "Payslip is consistent." || out.RiskLevel != "low" {
		t.Errorf("assessment = %+v", out)
	}
	if len(raw) == 0 {
		t.Error("raw content not returned")
	}
}

func TestAssessDocumentAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).AssessDocument(context.Background(), llm.AssessRequest{Text: "x"})
	if !errors.Is(err, common.ErrRemoteAuth) {
		t.Fatalf("err = %v, want ErrRemoteAuth", err)
	}
	if !errors.Is(err, common.ErrRemoteService) {
		t.Error("auth failure must also match the generic remote-service kind")
	}
}

func TestAssessDocumentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).AssessDocument(context.Background(), llm.AssessRequest{Text: "x"})
	if !errors.Is(err, common.ErrRemoteStatus) {
		t.Fatalf("err = %v, want ErrRemoteStatus", err)
	}
}

func TestAssessDocumentTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, _, err := c.AssessDocument(context.Background(), llm.AssessRequest{Text: "x"})
	if !errors.Is(err, common.ErrRemoteTimeout) {
		t.Fatalf("err = %v, want ErrRemoteTimeout", err)
	}
}

func TestAssessDocumentRejectsOffSchemaContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatResponse(`{"summary":"s","risk_level":"catastrophic"}`)))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).AssessDocument(context.Background(), llm.AssessRequest{Text: "x"})
	if !errors.Is(err, common.ErrRemoteService) {
		t.Fatalf("err = %v, want ErrRemoteService", err)
	}
}

func TestAssessDocumentNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, _, err := newTestClient(srv.URL).AssessDocument(context.Background(), llm.AssessRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestBuildUserPromptFieldOrderIsStable(t *testing.T) {
	req := llm.AssessRequest{
		Text:         "doc",
		Filename:     "f.pdf",
		DocumentType: "income_document",
		Fields: map[string]string{
			"net_income":   "3,800.00",
			"employer":     "Acme Pty Ltd",
			"gross_income": "5,000.00",
		},
	}
	a := buildUserPrompt(req, 100)
	for i := 0; i < 10; i++ {
		if b := buildUserPrompt(req, 100); b != a {
			t.Fatal("prompt differs across runs")
		}
	}
	ei := strings.Index(a, "employer:")
	gi := strings.Index(a, "gross_income:")
	ni := strings.Index(a, "net_income:")
	if !(ei < gi && gi < ni) {
		t.Errorf("fields not sorted: %q", a)
	}
}
