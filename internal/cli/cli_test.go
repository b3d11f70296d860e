package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/hero-data-service/internal/domain"
)

type apiCall struct {
	method string
	uri    string
	body   string
}

func newAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *[]apiCall) {
	t.Helper()
	var calls []apiCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, apiCall{method: r.Method, uri: r.URL.RequestURI(), body: string(raw)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	err := Execute(context.Background(), args, &out, &logs)
	return out.String(), err
}

func TestSearchPrintsResultAndMessages(t *testing.T) {
	srv, calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":14,"name":"Black Panther"}]`))
	})

	out, err := runCLI(t, "--api-url", srv.URL, "search", "panther")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(*calls) != 1 || (*calls)[0].uri != "/api/heroes/?name=panther" {
		t.Fatalf("unexpected calls %+v", *calls)
	}

	dec := json.NewDecoder(strings.NewReader(out))
	var heroes []domain.Hero
	if err := dec.Decode(&heroes); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(heroes) != 1 || heroes[0].Name != "Black Panther" {
		t.Fatalf("unexpected heroes %+v", heroes)
	}
	if !strings.Contains(out, `HeroDataService: found heroes matching "panther"`) {
		t.Fatalf("missing notifier line in %q", out)
	}
}

func TestAddSendsNameWithoutID(t *testing.T) {
	srv, calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"name":"New Hero"}`))
	})

	out, err := runCLI(t, "--api-url", srv.URL, "add", "New", "Hero")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(*calls) != 1 || (*calls)[0].method != http.MethodPost || (*calls)[0].body != `{"name":"New Hero"}` {
		t.Fatalf("unexpected calls %+v", *calls)
	}
	if !strings.Contains(out, "HeroDataService: added hero w/ id=42") {
		t.Fatalf("missing notifier line in %q", out)
	}
}

func TestGetFailurePrintsNullAndFailureLine(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	out, err := runCLI(t, "--api-url", srv.URL, "get", "99")
	if err != nil {
		t.Fatalf("operation failures must not fail the command: %v", err)
	}
	if !strings.HasPrefix(out, "null\n") {
		t.Fatalf("expected null result, got %q", out)
	}
	if !strings.Contains(out, "HeroDataService: getHero id=99 failed: Http failure response for") {
		t.Fatalf("missing failure line in %q", out)
	}
}

func TestDeleteUsesItemURL(t *testing.T) {
	srv, calls := newAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":5,"name":"X"}`))
	})

	if _, err := runCLI(t, "--api-url", srv.URL, "delete", "5"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0].method != http.MethodDelete || (*calls)[0].uri != "/api/heroes/5" {
		t.Fatalf("unexpected calls %+v", *calls)
	}
}

func TestInvalidIDIsUsageError(t *testing.T) {
	srv, calls := newAPI(t, func(http.ResponseWriter, *http.Request) {})

	_, err := runCLI(t, "--api-url", srv.URL, "get", "abc")
	if err == nil || !strings.Contains(err.Error(), `invalid hero id "abc"`) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no request, got %+v", *calls)
	}
}

func TestBlankSearchIssuesNoRequest(t *testing.T) {
	srv, calls := newAPI(t, func(http.ResponseWriter, *http.Request) {})

	out, err := runCLI(t, "--api-url", srv.URL, "search", "   ")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no request, got %+v", *calls)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty list output, got %q", out)
	}
}
