package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "modbot/2 (subreddit janitor)"

// Client talks to the reddit JSON API as a logged-in moderator account. All
// requests share one rate limiter enforcing a fixed minimum delay between
// calls; each blocking method waits on it before touching the network.
type Client struct {
	Host      string
	UserAgent string
	Username  string

	httpClient *retryablehttp.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	modhash string
}

func NewClient(host, username, password string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil
	rc.HTTPClient = &http.Client{
		Jar:     jar,
		Timeout: 30 * time.Second,
	}
	c := &Client{
		Host:       strings.TrimSuffix(host, "/"),
		UserAgent:  defaultUserAgent,
		Username:   username,
		httpClient: rc,
		// one request every two seconds, upstream is touchy about bursts
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		logger:  logger,
	}
	if err := c.login(context.Background(), username, password); err != nil {
		return nil, fmt.Errorf("logging in as %s: %w", username, err)
	}
	return c, nil
}

type loginResponse struct {
	JSON struct {
		Data struct {
			Modhash string `json:"modhash"`
		} `json:"data"`
	} `json:"json"`
}

func (c *Client) login(ctx context.Context, username, password string) error {
	c.logger.Info("logging in", "user", username)
	form := url.Values{}
	form.Set("user", username)
	form.Set("passwd", password)
	form.Set("api_type", "json")
	var resp loginResponse
	if err := c.request(ctx, "POST", c.Host+"/api/login", form, &resp); err != nil {
		return err
	}
	if resp.JSON.Data.Modhash == "" {
		return fmt.Errorf("login response missing modhash")
	}
	c.modhash = resp.JSON.Data.Modhash
	return nil
}

func (c *Client) request(ctx context.Context, method, rawurl string, form url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit API status %d for %s", resp.StatusCode, rawurl)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Get fetches a JSON endpoint, appending the .json suffix if the caller
// didn't.
func (c *Client) Get(ctx context.Context, rawurl string, out any) error {
	if !strings.Contains(rawurl, ".json") {
		rawurl += ".json"
	}
	return c.request(ctx, "GET", rawurl, nil, out)
}

// Post submits an API form with modhash and api_type filled in.
func (c *Client) Post(ctx context.Context, rawurl string, form url.Values, out any) error {
	if form == nil {
		form = url.Values{}
	}
	if form.Get("api_type") == "" {
		form.Set("api_type", "json")
	}
	form.Set("uh", c.modhash)
	return c.request(ctx, "POST", rawurl, form, out)
}

type listingEnvelope struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data Item   `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) listing(ctx context.Context, rawurl string) ([]Item, error) {
	var env listingEnvelope
	if err := c.Get(ctx, rawurl, &env); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(env.Data.Children))
	for _, child := range env.Data.Children {
		it := child.Data
		it.Kind = child.Kind
		items = append(items, it)
	}
	return items, nil
}

// NewSubmissions returns the subreddit's newest link submissions.
func (c *Client) NewSubmissions(ctx context.Context, subreddit string) ([]Item, error) {
	return c.listing(ctx, fmt.Sprintf("%s/r/%s/new/.json?sort=new", c.Host, subreddit))
}

// ModQueue returns the subreddit's moderation queue.
func (c *Client) ModQueue(ctx context.Context, subreddit string) ([]Item, error) {
	return c.listing(ctx, fmt.Sprintf("%s/r/%s/about/modqueue.json", c.Host, subreddit))
}

// RecentComments returns the subreddit's newest comments.
func (c *Client) RecentComments(ctx context.Context, subreddit string) ([]Item, error) {
	return c.listing(ctx, fmt.Sprintf("%s/r/%s/comments/.json", c.Host, subreddit))
}

// UserComments returns up to the author's 100 most recent comments.
func (c *Client) UserComments(ctx context.Context, author string) ([]Item, error) {
	return c.listing(ctx, fmt.Sprintf("%s/user/%s/comments/.json?limit=100&sort=new", c.Host, author))
}

// UserSubmitted returns up to the author's 100 most recent submissions.
func (c *Client) UserSubmitted(ctx context.Context, author string) ([]Item, error) {
	return c.listing(ctx, fmt.Sprintf("%s/user/%s/submitted/.json?limit=100&sort=new", c.Host, author))
}

// AboutUser fetches account metadata, notably the account creation time.
func (c *Client) AboutUser(ctx context.Context, author string) (*UserAbout, error) {
	var resp struct {
		Data UserAbout `json:"data"`
	}
	if err := c.Get(ctx, fmt.Sprintf("%s/user/%s/about.json", c.Host, author), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// WikiContent fetches the markdown body of a wiki page given its full JSON
// URL. Used for the externally maintained server-domain blocklist.
func (c *Client) WikiContent(ctx context.Context, rawurl string) (string, error) {
	var resp struct {
		Data struct {
			ContentMD string `json:"content_md"`
		} `json:"data"`
	}
	if err := c.Get(ctx, rawurl, &resp); err != nil {
		return "", err
	}
	return resp.Data.ContentMD, nil
}
