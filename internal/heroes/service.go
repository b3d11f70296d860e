// Package heroes is the data-access client for the heroes REST API. Every operation is a single
// round trip whose failures are logged and replaced by a fallback value; callers never see an error.
package heroes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/samvad-hq/hero-data-service/internal/domain"
	"github.com/samvad-hq/hero-data-service/internal/logger"
	"github.com/samvad-hq/hero-data-service/pkg/httpclient"
)

const (
	// DefaultBaseURL is where the mock heroes API listens unless configured otherwise.
	DefaultBaseURL = "http://localhost:8080"

	heroesPath = "/api/heroes"
	logPrefix  = "HeroDataService: "
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// Ack is the opaque acknowledgement of an update.
type Ack struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body,omitempty"`
}

// Service maps hero operations onto HTTP requests against the heroes resource.
type Service struct {
	client   HTTPTransport
	notifier Notifier
	sink     DiagnosticSink
	logs     logger.Logger
	baseURL  string
}

// Option customizes a Service.
type Option func(*Service)

// WithBaseURL sets the scheme and host the resource paths are resolved against.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			s.baseURL = base
		}
	}
}

// WithDiagnostics sets the sink raw request errors are reported to.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(s *Service) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithLogger sets the structured logger used for debug traces.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) { s.logs = logger.Ensure(log) }
}

// NewService wires a hero service to its transport and notifier.
func NewService(client HTTPTransport, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		client:   client,
		notifier: notifier,
		sink:     discardSink{},
		logs:     logger.NopLogger{},
		baseURL:  DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListHeroes fetches every hero. Falls back to an empty slice.
func (s *Service) ListHeroes(ctx context.Context) []domain.Hero {
	var heroes []domain.Hero
	if err := s.getJSON(ctx, s.collectionURL(), &heroes); err != nil {
		return recoverWith(ctx, s, "listHeroes", []domain.Hero{})(err)
	}
	s.log("fetched heroes")
	return heroes
}

// GetHero fetches the hero with id. Returns nil when the request fails, including 404.
func (s *Service) GetHero(ctx context.Context, id int) *domain.Hero {
	var hero domain.Hero
	if err := s.getJSON(ctx, s.itemURL(id), &hero); err != nil {
		return recoverWith[*domain.Hero](ctx, s, fmt.Sprintf("getHero id=%d", id), nil)(err)
	}
	s.log(fmt.Sprintf("fetched hero id=%d", id))
	return &hero
}

// UpdateHero replaces the server copy of hero. Returns nil on failure.
func (s *Service) UpdateHero(ctx context.Context, hero domain.Hero) *Ack {
	target := s.collectionURL()
	resp, err := s.client.Put(ctx, target, hero, jsonHeaders)
	if err = checkResponse(http.MethodPut, target, resp, err); err != nil {
		return recoverWith[*Ack](ctx, s, "updateHero", nil)(err)
	}
	s.log(fmt.Sprintf("updated hero id=%d", hero.ID))
	return &Ack{StatusCode: resp.StatusCode(), Body: rawBody(resp.Body())}
}

// AddHero creates hero on the server, which assigns its id. Returns the created hero or nil.
func (s *Service) AddHero(ctx context.Context, hero domain.Hero) *domain.Hero {
	target := s.collectionURL()
	resp, err := s.client.Post(ctx, target, hero, jsonHeaders)
	if err = checkResponse(http.MethodPost, target, resp, err); err != nil {
		return recoverWith[*domain.Hero](ctx, s, "addHero", nil)(err)
	}

	var created domain.Hero
	if err := decodeBody(target, resp, &created); err != nil {
		return recoverWith[*domain.Hero](ctx, s, "addHero", nil)(err)
	}
	s.log(fmt.Sprintf("added hero w/ id=%d", created.ID))
	return &created
}

// DeleteHero removes the referenced hero. When the server acknowledges without a body the result
// carries only the id. Returns nil on failure.
func (s *Service) DeleteHero(ctx context.Context, ref domain.HeroRef) *domain.Hero {
	id := ref.HeroID()
	target := s.itemURL(id)
	resp, err := s.client.Delete(ctx, target, jsonHeaders)
	if err = checkResponse(http.MethodDelete, target, resp, err); err != nil {
		return recoverWith[*domain.Hero](ctx, s, "deleteHero", nil)(err)
	}

	deleted := domain.Hero{ID: id}
	if len(strings.TrimSpace(string(resp.Body()))) > 0 {
		if err := decodeBody(target, resp, &deleted); err != nil {
			return recoverWith[*domain.Hero](ctx, s, "deleteHero", nil)(err)
		}
	}
	s.log(fmt.Sprintf("deleted hero id=%d", id))
	return &deleted
}

// SearchHeroes returns heroes whose name contains term. A blank term short-circuits to an empty
// slice without issuing a request.
func (s *Service) SearchHeroes(ctx context.Context, term string) []domain.Hero {
	if strings.TrimSpace(term) == "" {
		return []domain.Hero{}
	}

	var heroes []domain.Hero
	if err := s.getJSON(ctx, s.searchURL(term), &heroes); err != nil {
		return recoverWith(ctx, s, "searchHeroes", []domain.Hero{})(err)
	}
	if len(heroes) > 0 {
		s.log(fmt.Sprintf(`found heroes matching "%s"`, term))
	} else {
		s.log(fmt.Sprintf(`no heroes matching "%s"`, term))
	}
	return heroes
}

func (s *Service) getJSON(ctx context.Context, target string, out any) error {
	resp, err := s.client.Get(ctx, target, nil)
	if err = checkResponse(http.MethodGet, target, resp, err); err != nil {
		return err
	}
	return decodeBody(target, resp, out)
}

// log appends a prefixed line to the notifier.
func (s *Service) log(message string) {
	line := logPrefix + message
	s.notifier.Add(line)
	s.logs.DebugObj("hero data service message", "message", line)
}

func (s *Service) collectionURL() string { return s.baseURL + heroesPath }

func (s *Service) itemURL(id int) string {
	return s.baseURL + heroesPath + "/" + strconv.Itoa(id)
}

func (s *Service) searchURL(term string) string {
	return s.baseURL + heroesPath + "/?" + url.Values{"name": []string{term}}.Encode()
}

func checkResponse(method, target string, resp httpclient.Response, err error) error {
	if err != nil {
		return &RequestError{Method: method, URL: target, Err: err}
	}
	if resp == nil {
		return &RequestError{Method: method, URL: target, Err: errEmptyResponse}
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &RequestError{Method: method, URL: target, StatusCode: code}
	}
	return nil
}

func decodeBody(target string, resp httpclient.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &RequestError{URL: target, StatusCode: resp.StatusCode(), Err: err}
	}
	return nil
}

func rawBody(body []byte) json.RawMessage {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out
}
