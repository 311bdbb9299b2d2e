package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const genericFailure = "Something went wrong. Please try again."

// Attachment is a file sent alongside a multipart create request,
// e.g. a deposit payment proof.
type Attachment struct {
	Field    string
	FileName string
	Content  []byte
}

//go:generate mockgen -source=client.go -destination=client_mock.go -package=api
type Doer interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	PostForm(ctx context.Context, path string, fields map[string]string, file *Attachment, out any) error
	Patch(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string) error
}

// Client wraps the platform REST API. It attaches credentials, decodes
// the response envelope, and surfaces server rejections as *Error. It
// does not retry and does not cache.
type Client struct {
	http  *resty.Client
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: hc}
}

// SetToken sets the bearer token attached to subsequent requests.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the platform's uniform response shape.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []FieldError    `json:"errors"`
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	r.SetHeader("X-Request-Id", uuid.NewString())

	if c.token != "" {
		r.SetAuthToken(c.token)
	}

	return r
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	resp, err := c.newRequest(ctx).Get(path)

	return c.finish(resp, err, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	resp, err := c.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)

	return c.finish(resp, err, out)
}

func (c *Client) PostForm(ctx context.Context, path string, fields map[string]string, file *Attachment, out any) error {
	req := c.newRequest(ctx).SetFormData(fields)

	if file != nil {
		req.SetFileReader(file.Field, file.FileName, bytes.NewReader(file.Content))
	}

	resp, err := req.Post(path)

	return c.finish(resp, err, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Patch(path)

	return c.finish(resp, err, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.newRequest(ctx).Delete(path)

	return c.finish(resp, err, nil)
}

func (c *Client) finish(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("calling api: %w", err)
	}

	if resp.IsError() {
		return decodeError(resp)
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}

	return nil
}

func decodeError(resp *resty.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode(),
		Message:    genericFailure,
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return apiErr
	}

	if env.Message != "" {
		apiErr.Message = env.Message
	}

	if len(env.Errors) > 0 {
		apiErr.Fields = make(map[string]string, len(env.Errors))
		for _, fe := range env.Errors {
			apiErr.Fields[fe.Field] = fe.Message
		}
	}

	return apiErr
}
