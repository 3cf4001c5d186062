// Package media implements the MediaStore port against the Cloudinary
// signed upload REST API.
package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/niharika-studio/portfolio-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1"
	defaultTimeout = 30 * time.Second
)

// Config carries the Cloudinary account credentials and client tuning.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// Folder is the remote folder every upload lands in.
	Folder string
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Cloudinary image API. All requests are signed with the
// account secret; transient failures (network errors, 5xx) are retried once.
type Client struct {
	http      *http.Client
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	log       zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
		log:       log,
	}
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload streams content to the media host and returns its durable reference.
func (c *Client) Upload(ctx context.Context, content io.Reader) (*ports.MediaUpload, error) {
	// Buffered once so the request can be rebuilt on retry.
	body, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload content: %w", err)
	}

	params := c.signedParams(map[string]string{"folder": c.folder})

	build := func() (*http.Request, error) {
		var buf strings.Builder
		mw := multipart.NewWriter(&buf)
		for k, v := range params {
			if err := mw.WriteField(k, v); err != nil {
				return nil, err
			}
		}
		part, err := mw.CreateFormFile("file", "upload")
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(body); err != nil {
			return nil, err
		}
		if err := mw.Close(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("upload"), strings.NewReader(buf.String()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req, nil
	}

	return c.doUpload(build)
}

// UploadFromURL asks the media host to fetch and store the remote resource
// itself; no bytes pass through this process.
func (c *Client) UploadFromURL(ctx context.Context, remoteURL string) (*ports.MediaUpload, error) {
	params := c.signedParams(map[string]string{"folder": c.folder})
	params["file"] = remoteURL

	build := func() (*http.Request, error) {
		return c.formRequest(ctx, c.endpoint("upload"), params)
	}

	return c.doUpload(build)
}

// Delete destroys the remote object. An object already gone on the host is
// treated as deleted.
func (c *Client) Delete(ctx context.Context, mediaID string) error {
	params := c.signedParams(map[string]string{"public_id": mediaID})

	resp, err := c.doWithRetry(func() (*http.Request, error) {
		return c.formRequest(ctx, c.endpoint("destroy"), params)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var result struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode destroy response: %w", err)
	}

	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("destroy %s: host answered %q", mediaID, result.Result)
	}
}

func (c *Client) doUpload(build func() (*http.Request, error)) (*ports.MediaUpload, error) {
	resp, err := c.doWithRetry(build)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload rejected (%d): %s", resp.StatusCode, out.Error.Message)
	}
	if out.PublicID == "" || out.SecureURL == "" {
		return nil, fmt.Errorf("upload response missing object reference")
	}

	return &ports.MediaUpload{URL: out.SecureURL, MediaID: out.PublicID}, nil
}

// doWithRetry performs the request, retrying once when the failure looks
// transient. Rebuilding the request per attempt keeps the body readable.
func (c *Client) doWithRetry(build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("build media request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			c.log.Warn().Err(err).Int("attempt", attempt+1).Msg("media host request failed")
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("media host answered %d", resp.StatusCode)
			c.log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).Msg("media host server error")
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("media host unreachable: %w", lastErr)
}

func (c *Client) formRequest(ctx context.Context, endpoint string, params map[string]string) (*http.Request, error) {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (c *Client) endpoint(action string) string {
	return fmt.Sprintf("%s/%s/image/%s", c.baseURL, c.cloudName, action)
}

// signedParams adds timestamp, api_key and the request signature required by
// the host: sha1 over the sorted signable params concatenated with the secret.
func (c *Client) signedParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+3)
	for k, v := range params {
		out[k] = v
	}
	out["timestamp"] = strconv.FormatInt(time.Now().Unix(), 10)
	out["signature"] = signature(out, c.apiSecret)
	out["api_key"] = c.apiKey
	return out
}

func signature(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "file" || k == "api_key" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
