package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhub/quill/models"
)

func TestCanCreatePost(t *testing.T) {
	assert.True(t, CanCreatePost(models.Actor{ID: 1, Username: "alice"}).Allowed)

	dec := CanCreatePost(models.Anonymous)
	assert.False(t, dec.Allowed)
	assert.Equal(t, ReasonUnauthenticated, dec.Reason)
}

func TestCanCreateComment(t *testing.T) {
	assert.True(t, CanCreateComment(models.Actor{ID: 7}).Allowed)

	dec := CanCreateComment(models.Anonymous)
	assert.False(t, dec.Allowed)
	assert.Equal(t, ReasonUnauthenticated, dec.Reason)
}

func TestCanEditPost(t *testing.T) {
	post := &models.Post{ID: 10, AuthorID: 1}

	tests := []struct {
		name    string
		actor   models.Actor
		allowed bool
		reason  Reason
	}{
		{"author may edit", models.Actor{ID: 1, Username: "alice"}, true, ""},
		{"other user may not", models.Actor{ID: 2, Username: "bob"}, false, ReasonNotAuthor},
		{"anonymous may not", models.Anonymous, false, ReasonUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := CanEditPost(tt.actor, post)
			assert.Equal(t, tt.allowed, dec.Allowed)
			assert.Equal(t, tt.reason, dec.Reason)
		})
	}
}

func TestCanFollow(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice"}

	tests := []struct {
		name    string
		actor   models.Actor
		allowed bool
		reason  Reason
	}{
		{"other user may follow", models.Actor{ID: 2, Username: "bob"}, true, ""},
		{"self-follow denied", models.Actor{ID: 1, Username: "alice"}, false, ReasonSelfFollow},
		{"anonymous denied", models.Anonymous, false, ReasonUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := CanFollow(tt.actor, alice)
			assert.Equal(t, tt.allowed, dec.Allowed)
			assert.Equal(t, tt.reason, dec.Reason)
		})
	}
}
