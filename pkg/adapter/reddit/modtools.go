package reddit

import (
	"context"
	"net/http"
	"net/url"

	"github.com/modwatch-lab/tattler/pkg/domain/types"
)

// AddNote writes an internal mod note against a user and the content the
// note refers to.
func (x *Client) AddNote(ctx context.Context, subreddit, username string, contentID types.ContentID, label, text string) error {
	form := url.Values{
		"subreddit": {subreddit},
		"user":      {username},
		"reddit_id": {contentID.String()},
		"label":     {label},
		"note":      {text},
	}
	return x.do(ctx, http.MethodPost, "/api/mod/notes", nil, form, nil)
}

// SendModmail starts an internal modmail conversation in the community.
func (x *Client) SendModmail(ctx context.Context, subreddit, subject, body string) error {
	form := url.Values{
		"srName":     {subreddit},
		"subject":    {subject},
		"body":       {body},
		"isInternal": {"true"},
	}
	return x.do(ctx, http.MethodPost, "/api/mod/conversations", nil, form, nil)
}
