package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/studyloop/ai-tutor/internal/logger"
	"github.com/studyloop/ai-tutor/internal/model"
)

// Client talks to the tutoring backend
type Client struct {
	baseURL string
	userID  string
	httpc   *http.Client
	log     *logger.Logger
}

// New creates a backend client. The timeout applies per request; callers can
// still cancel earlier through the context.
func New(baseURL, userID string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// UserID returns the user id this client authenticates requests with
func (c *Client) UserID() string {
	return c.userID
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Text            string `json:"text"`
	UserID          string `json:"user_id,omitempty"`
	IsSystemCommand bool   `json:"is_system_command,omitempty"`
}

// Chat sends one user utterance (or silent system command) and decodes the
// reply into a ChatReply variant. Decoding never fails: unrecognizable
// payloads come back as plain text.
func (c *Client) Chat(ctx context.Context, text string, systemCommand bool) (*ChatReply, error) {
	body, err := c.postJSON(ctx, "/chat", ChatRequest{
		Text:            text,
		UserID:          c.userID,
		IsSystemCommand: systemCommand,
	})
	if err != nil {
		return nil, err
	}
	return DecodeChatReply(body), nil
}

// UploadResult is the decoded reply of POST /upload
type UploadResult struct {
	Message string
	// Topics is non-nil when the upload reply already embeds the extracted
	// topic tree, saving the follow-up topics fetch.
	Topics []model.Topic
}

// UploadDocument sends a study document as multipart form data
func (c *Client) UploadDocument(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	form := &bytes.Buffer{}
	writer := multipart.NewWriter(form)

	fw, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", form)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}

	result := &UploadResult{Message: stringField(raw, "message")}
	if topicsVal, ok := raw["topics"]; ok {
		result.Topics = parseTopicsValue(topicsVal)
	}
	return result, nil
}

// Topics fetches the current topic tree. Three reply shapes are accepted:
// a flat list under "topics", a mapping whose values carry a nested "topics"
// list, and anything else, which yields (nil, nil): no usable topics, but
// not a transport failure either.
func (c *Client) Topics(ctx context.Context) ([]model.Topic, error) {
	body, err := c.getJSON(ctx, "/topics")
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	return parseTopicsValue(raw["topics"]), nil
}

// Knowledge fetches the per-user knowledge summary
func (c *Client) Knowledge(ctx context.Context) (*KnowledgeReply, error) {
	body, err := c.getJSON(ctx, "/user/"+url.PathEscape(c.userID)+"/knowledge")
	if err != nil {
		return nil, err
	}
	var reply KnowledgeReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	return &reply, nil
}

// TopicProgress fetches the aggregate for a single topic
func (c *Client) TopicProgress(ctx context.Context, topic string) (*TopicProgressReply, error) {
	body, err := c.getJSON(ctx, "/user/"+url.PathEscape(c.userID)+"/topic/"+url.PathEscape(topic))
	if err != nil {
		return nil, err
	}
	var reply TopicProgressReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	return &reply, nil
}

// Patterns fetches the learning-pattern analysis. Fields are defaulted one
// by one, so a partially malformed payload still yields a usable reply.
func (c *Client) Patterns(ctx context.Context) (*PatternsReply, error) {
	body, err := c.getJSON(ctx, "/user/"+url.PathEscape(c.userID)+"/patterns")
	if err != nil {
		return nil, err
	}
	return ParsePatterns(body), nil
}

// Track reports one user interaction to the knowledge tracker
func (c *Client) Track(ctx context.Context, event TrackEvent) error {
	event.UserID = c.userID
	_, err := c.postJSON(ctx, "/user/track", event)
	return err
}

// LessonPlanRequest is the body of POST /lesson-plan
type LessonPlanRequest struct {
	Topic          string   `json:"topic"`
	Subtopics      []string `json:"subtopics,omitempty"`
	TimeAvailable  int      `json:"time_available"`
	KnowledgeLevel float64  `json:"knowledge_level"`
	UserID         string   `json:"user_id,omitempty"`
}

// GenerateLessonPlan asks the backend to generate a plan for one topic
func (c *Client) GenerateLessonPlan(ctx context.Context, req LessonPlanRequest) (*model.LessonPlan, error) {
	req.UserID = c.userID
	body, err := c.postJSON(ctx, "/lesson-plan", req)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	if planVal, ok := raw["lesson_plan"]; ok {
		raw, _ = planVal.(map[string]interface{})
	}
	plan := parseLessonPlan(raw)
	if plan == nil {
		return nil, fmt.Errorf("%w: reply carries no lesson plan", ErrBadReply)
	}
	return plan, nil
}

// CurriculumRequest is the body of POST /curriculum
type CurriculumRequest struct {
	Topics             []string           `json:"topics"`
	TotalTimeAvailable int                `json:"total_time_available"`
	KnowledgeLevels    map[string]float64 `json:"knowledge_levels,omitempty"`
	UserID             string             `json:"user_id,omitempty"`
}

// GenerateCurriculum asks the backend for a multi-topic curriculum
func (c *Client) GenerateCurriculum(ctx context.Context, req CurriculumRequest) (*model.Curriculum, error) {
	req.UserID = c.userID
	body, err := c.postJSON(ctx, "/curriculum", req)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Curriculum *model.Curriculum `json:"curriculum"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Curriculum != nil {
		return wrapper.Curriculum, nil
	}
	var curriculum model.Curriculum
	if err := json.Unmarshal(body, &curriculum); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadReply, err)
	}
	return &curriculum, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) getJSON(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("backend returned error status",
			"path", req.URL.Path, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, req.URL.Path, resp.StatusCode)
	}
	return body, nil
}
