// Package api talks to the survey backend. It is the only place network
// errors exist; everything leaves here as a classified *Error.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/goccy/go-json"

	"github.com/Roman3340/ai-surveys-sub000/config"
	"github.com/Roman3340/ai-surveys-sub000/log"
)

// Client is the collaborator surface the rest of the app needs.
type Client interface {
	CreateSurvey(ctx context.Context, payload SurveyPayload) (string, error)
	PublishSurvey(ctx context.Context, surveyID string) error
	UnpublishSurvey(ctx context.Context, surveyID string) error
	DeleteSurvey(ctx context.Context, surveyID string) error
	UpdateSettings(ctx context.Context, surveyID string, payload SurveyPayload) error

	CreateQuestion(ctx context.Context, surveyID string, payload QuestionPayload) (string, error)
	UpdateQuestion(ctx context.Context, surveyID, questionID string, payload QuestionPayload) error
	DeleteQuestion(ctx context.Context, surveyID, questionID string) error

	FetchPublicSurvey(ctx context.Context, surveyID string) (*PublicSurvey, error)
	SubmitAnswers(ctx context.Context, surveyID string, payload SubmissionPayload) (string, error)

	ShareInfo(ctx context.Context, surveyID string) (*ShareInfo, error)
	Stats(ctx context.Context, surveyID string) (*Stats, error)
}

type HTTPClient struct {
	base string
	hc   *http.Client

	mu    sync.Mutex
	token string
}

// New builds the production client from startup configuration. The
// timeout is flat per request; a timeout surfaces as KindTransient.
func New(cfg config.Config) *HTTPClient {
	return &HTTPClient{
		base: cfg.BackendURL,
		hc:   &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *HTTPClient) CreateSurvey(ctx context.Context, payload SurveyPayload) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, "api.create_survey", http.MethodPost, "/api/surveys", payload, &out)
	return out.ID, err
}

func (c *HTTPClient) PublishSurvey(ctx context.Context, surveyID string) error {
	path := fmt.Sprintf("/api/surveys/%s/publish", surveyID)
	return c.do(ctx, "api.publish_survey", http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) UnpublishSurvey(ctx context.Context, surveyID string) error {
	path := fmt.Sprintf("/api/surveys/%s/unpublish", surveyID)
	return c.do(ctx, "api.unpublish_survey", http.MethodPost, path, nil, nil)
}

func (c *HTTPClient) DeleteSurvey(ctx context.Context, surveyID string) error {
	path := fmt.Sprintf("/api/surveys/%s", surveyID)
	return c.do(ctx, "api.delete_survey", http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, surveyID string, payload SurveyPayload) error {
	path := fmt.Sprintf("/api/surveys/%s/settings", surveyID)
	return c.do(ctx, "api.update_settings", http.MethodPut, path, payload, nil)
}

func (c *HTTPClient) CreateQuestion(ctx context.Context, surveyID string, payload QuestionPayload) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/api/surveys/%s/questions", surveyID)
	err := c.do(ctx, "api.create_question", http.MethodPost, path, payload, &out)
	return out.ID, err
}

func (c *HTTPClient) UpdateQuestion(ctx context.Context, surveyID, questionID string, payload QuestionPayload) error {
	path := fmt.Sprintf("/api/surveys/%s/questions/%s", surveyID, questionID)
	return c.do(ctx, "api.update_question", http.MethodPut, path, payload, nil)
}

func (c *HTTPClient) DeleteQuestion(ctx context.Context, surveyID, questionID string) error {
	path := fmt.Sprintf("/api/surveys/%s/questions/%s", surveyID, questionID)
	return c.do(ctx, "api.delete_question", http.MethodDelete, path, nil, nil)
}

func (c *HTTPClient) FetchPublicSurvey(ctx context.Context, surveyID string) (*PublicSurvey, error) {
	survey := &PublicSurvey{}
	path := fmt.Sprintf("/api/public/surveys/%s", surveyID)
	err := c.do(ctx, "api.fetch_public_survey", http.MethodGet, path, nil, survey)
	if err != nil {
		return nil, err
	}
	return survey, nil
}

func (c *HTTPClient) SubmitAnswers(ctx context.Context, surveyID string, payload SubmissionPayload) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	path := fmt.Sprintf("/api/public/surveys/%s/submissions", surveyID)
	err := c.do(ctx, "api.submit_answers", http.MethodPost, path, payload, &out)
	return out.ID, err
}

func (c *HTTPClient) ShareInfo(ctx context.Context, surveyID string) (*ShareInfo, error) {
	info := &ShareInfo{}
	path := fmt.Sprintf("/api/surveys/%s/share", surveyID)
	err := c.do(ctx, "api.share_info", http.MethodGet, path, nil, info)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (c *HTTPClient) Stats(ctx context.Context, surveyID string) (*Stats, error) {
	stats := &Stats{}
	path := fmt.Sprintf("/api/surveys/%s/stats", surveyID)
	err := c.do(ctx, "api.stats", http.MethodGet, path, nil, stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// do runs one JSON round trip. Transport failures and non-2xx statuses
// both come back as *Error; the response body's "error" field, when
// present, becomes the user-visible message.
func (c *HTTPClient) do(ctx context.Context, code, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &Error{Code: code, Kind: KindRejected, Message: err.Error()}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return &Error{Code: code, Kind: KindRejected, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Debugf("%s: %s", code, err)
		return &Error{Code: code, Kind: KindTransient, Message: "network error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Code: code, Kind: classify(resp.StatusCode), Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Error
		}
		log.Debugf("%s: status %d", code, resp.StatusCode)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Code: code, Kind: KindTransient, Message: "malformed response"}
		}
	}
	return nil
}

func (c *HTTPClient) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
