package catapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client получает ссылку на случайную картинку кота: GET url -> {"file": "..."}.
type Client struct {
	url  string
	http *http.Client
}

func New(url string) *Client {
	return &Client{url: url, http: &http.Client{Timeout: 10 * time.Second}}
}

type meow struct {
	File string `json:"file"`
}

// RandomImage возвращает URL картинки; JSON-экранированные слеши из ответа убираются здесь.
func (c *Client) RandomImage(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", c.url, err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%s: http %d: %s", c.url, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var m meow
	if err := json.Unmarshal(body, &m); err != nil {
		return "", fmt.Errorf("%s: decode: %w", c.url, err)
	}
	if m.File == "" {
		return "", fmt.Errorf("%s: empty file in response", c.url)
	}
	return strings.ReplaceAll(m.File, `\`, ""), nil
}
