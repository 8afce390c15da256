package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const postsPerPage = 20

// Client talks to the WordPress REST API of one site.
type Client struct {
	conn    Connection
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

// New creates a Client. client may be nil; a 60s-timeout default is used.
func New(conn Connection, client *http.Client, verbose bool, logger *log.Logger) (*Client, error) {
	if conn.URL == "" || conn.Username == "" || conn.AppPassword == "" {
		return nil, errors.New("connection must include url, username, and app password")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{conn: conn, client: client, verbose: verbose, logger: logger}, nil
}

func (c *Client) infof(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}

func (c *Client) apiURL(path string) string {
	base := c.conn.URL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "wp-json/wp/v2/" + path
}

// ListPosts fetches the most recent posts (paginated at 20).
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	url := c.apiURL(fmt.Sprintf("posts?per_page=%d&_embed", postsPerPage))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.conn.Username, c.conn.AppPassword)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError("failed to fetch posts", resp.StatusCode, body)
	}

	var posts []Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	c.infof("Fetched %d posts from %s", len(posts), c.conn.URL)
	return posts, nil
}

// UpdatePost overwrites a post's title and content.
func (c *Client) UpdatePost(ctx context.Context, postID int, title, content string) error {
	payload, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return err
	}

	url := c.apiURL(fmt.Sprintf("posts/%d", postID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.conn.Username, c.conn.AppPassword)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apiError(fmt.Sprintf("failed to update post %d", postID), resp.StatusCode, body)
	}
	c.infof("Updated post %d on %s", postID, c.conn.URL)
	return nil
}

// apiError surfaces the response's own error message when the body carries
// one, falling back to the HTTP status.
func apiError(action string, status int, body []byte) error {
	if msg := gjson.GetBytes(body, "message").String(); msg != "" {
		return fmt.Errorf("%s: %s", action, msg)
	}
	return fmt.Errorf("%s: status %d", action, status)
}
