package reddit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/interfaces"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/utils/safe"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://oauth.reddit.com"

// Config holds script-app credentials for the moderation API.
type Config struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	BaseURL      string
}

// Client implements the moderation-API collaborators (roster listing,
// ban-status listing, mod notes, modmail) over the OAuth API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

var (
	_ interfaces.RosterProvider    = &Client{}
	_ interfaces.BanStatusProvider = &Client{}
	_ interfaces.NoteWriter        = &Client{}
	_ interfaces.ModmailSender     = &Client{}
)

// New authenticates with the password grant and returns a client whose
// transport refreshes tokens as needed.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, goerr.New("reddit API credentials are not set", goerr.T(errs.TagConfig))
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  "https://www.reddit.com/api/v1/access_token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	token, err := oauthCfg.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to authenticate with reddit API", goerr.T(errs.TagConfig))
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "tattler (github.com/modwatch-lab/tattler)"
	}

	return &Client{
		httpClient: oauthCfg.Client(ctx, token),
		baseURL:    baseURL,
		userAgent:  userAgent,
	}, nil
}

func (x *Client) do(ctx context.Context, method, path string, query url.Values, form url.Values, out any) error {
	endpoint := x.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return goerr.Wrap(err, "failed to build API request", goerr.V("path", path))
	}
	req.Header.Set("User-Agent", x.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call reddit API", goerr.T(errs.TagProvider), goerr.V("path", path))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New("reddit API returned error",
			goerr.T(errs.TagProvider),
			goerr.V("path", path),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(data)),
		)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return goerr.Wrap(err, "failed to decode API response", goerr.T(errs.TagProvider), goerr.V("path", path))
		}
	}
	return nil
}

type userListing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Name string `json:"name"`
			Note string `json:"note"`
		} `json:"children"`
	} `json:"data"`
}

// ListModerators returns one page of the community's moderator roster.
func (x *Client) ListModerators(ctx context.Context, subreddit, after string, limit int) ([]string, string, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	if after != "" {
		query.Set("after", after)
	}

	var listing userListing
	if err := x.do(ctx, http.MethodGet, "/r/"+subreddit+"/about/moderators", query, nil, &listing); err != nil {
		return nil, "", err
	}

	names := make([]string, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		names = append(names, child.Name)
	}
	return names, listing.Data.After, nil
}

// ListBans queries the banned-user listing filtered to a single username.
func (x *Client) ListBans(ctx context.Context, subreddit, username string) ([]interfaces.BanRecord, error) {
	query := url.Values{"user": {username}}

	var listing userListing
	if err := x.do(ctx, http.MethodGet, "/r/"+subreddit+"/about/banned", query, nil, &listing); err != nil {
		return nil, err
	}

	records := make([]interfaces.BanRecord, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		records = append(records, interfaces.BanRecord{Username: child.Name, Note: child.Note})
	}
	return records, nil
}
