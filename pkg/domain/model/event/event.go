package event

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/modwatch-lab/tattler/pkg/domain/model/errs"
	"github.com/modwatch-lab/tattler/pkg/domain/types"
)

// Actor is the account that performed a moderation action.
type Actor struct {
	Name string `json:"name"`
}

type Subreddit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is the live copy of a post as carried by trigger events. Fields may
// already be scrubbed by the platform when the event is an admin removal.
type Post struct {
	ID        types.ContentID `json:"id"`
	Title     string          `json:"title"`
	Selftext  string          `json:"selftext"`
	URL       string          `json:"url"`
	Permalink string          `json:"permalink"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Comment struct {
	ID        types.ContentID `json:"id"`
	Body      string          `json:"body"`
	Permalink string          `json:"permalink"`
	CreatedAt time.Time       `json:"createdAt"`
}

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModAction is a moderation-action trigger event.
type ModAction struct {
	Action        types.ActionKind `json:"action"`
	Moderator     *Actor           `json:"moderator"`
	Subreddit     *Subreddit       `json:"subreddit"`
	TargetPost    *Post            `json:"targetPost,omitempty"`
	TargetComment *Comment         `json:"targetComment,omitempty"`
	TargetUser    *User            `json:"targetUser,omitempty"`
}

// Validate checks the fields every classification depends on. A missing
// field makes the whole event unprocessable.
func (x *ModAction) Validate() error {
	if x.Action == "" {
		return goerr.New("missing action in mod action event", goerr.T(errs.TagFatalEvent))
	}
	if x.Moderator == nil || x.Moderator.Name == "" {
		return goerr.New("missing moderator in mod action event", goerr.T(errs.TagFatalEvent),
			goerr.V("action", x.Action))
	}
	if x.Subreddit == nil || x.Subreddit.Name == "" {
		return goerr.New("missing subreddit in mod action event", goerr.T(errs.TagFatalEvent),
			goerr.V("action", x.Action))
	}
	return nil
}

// TargetKind discriminates the optional target sub-objects of a ModAction.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPost
	TargetComment
)

// Target is the tagged union over the event's optional post/comment targets,
// built once at the top of classification instead of re-checked downstream.
type Target struct {
	Kind    TargetKind
	Post    *Post
	Comment *Comment
}

func (x *ModAction) Target() Target {
	if x.TargetPost != nil && x.TargetPost.ID != "" {
		return Target{Kind: TargetPost, Post: x.TargetPost}
	}
	if x.TargetComment != nil && x.TargetComment.ID != "" {
		return Target{Kind: TargetComment, Comment: x.TargetComment}
	}
	return Target{Kind: TargetNone}
}

// CreatedAt returns the creation time of the targeted content, or zero when
// the action has no content target.
func (x Target) CreatedAt() time.Time {
	switch x.Kind {
	case TargetPost:
		return x.Post.CreatedAt
	case TargetComment:
		return x.Comment.CreatedAt
	}
	return time.Time{}
}

// ID returns the content fullname of the target, or empty for user-only
// actions.
func (x Target) ID() types.ContentID {
	switch x.Kind {
	case TargetPost:
		return x.Post.ID
	case TargetComment:
		return x.Comment.ID
	}
	return ""
}

// PostSubmit is delivered for both new and edited posts.
type PostSubmit struct {
	Post *Post `json:"post"`
}

// CommentSubmit is delivered for both new and edited comments.
type CommentSubmit struct {
	Comment *Comment `json:"comment"`
}

// LifecycleKind is an app lifecycle transition.
type LifecycleKind string

const (
	LifecycleInstalled LifecycleKind = "installed"
	LifecycleUpgraded  LifecycleKind = "upgraded"
)

type Lifecycle struct {
	Kind LifecycleKind `json:"kind"`
}
