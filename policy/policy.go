// Package policy holds the pure authorization decisions for the platform.
// Every allow/deny check elsewhere must go through these functions; they touch
// nothing beyond the entities passed in.
package policy

import "github.com/quillhub/quill/models"

// Reason tags a denied decision.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonNotAuthor       Reason = "not_author"
	ReasonSelfFollow      Reason = "self_follow"
)

// Decision is the outcome of a policy check. Reason is empty when allowed.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(r Reason) Decision {
	return Decision{Reason: r}
}

// CanCreatePost allows any authenticated actor.
func CanCreatePost(actor models.Actor) Decision {
	if !actor.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	return allow()
}

// CanCreateComment allows any authenticated actor.
func CanCreateComment(actor models.Actor) Decision {
	if !actor.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	return allow()
}

// CanEditPost allows only the post's own author.
func CanEditPost(actor models.Actor, post *models.Post) Decision {
	if !actor.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	if actor.ID != post.AuthorID {
		return deny(ReasonNotAuthor)
	}
	return allow()
}

// CanFollow allows an authenticated actor to follow anyone but themselves.
func CanFollow(actor models.Actor, author *models.User) Decision {
	if !actor.IsAuthenticated() {
		return deny(ReasonUnauthenticated)
	}
	if actor.ID == author.ID {
		return deny(ReasonSelfFollow)
	}
	return allow()
}
