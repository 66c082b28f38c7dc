package services

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhub/quill/models"
)

type fakeStore struct {
	path string
	err  error
}

func (f fakeStore) Store(src io.Reader, suggestedName string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

var postEpoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestCreatePost(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	post, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "Hello world"})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", post.Text)
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Nil(t, post.GroupID)
	assert.True(t, post.CreatedAt.Equal(postEpoch))
}

func TestCreatePostWithGroup(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	golang := createGroup(t, db, "Go", "go")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	post, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "about go", GroupSlug: "go"})
	require.NoError(t, err)
	require.NotNil(t, post.GroupID)
	assert.Equal(t, golang.ID, *post.GroupID)
	require.NotNil(t, post.Group)
	assert.Equal(t, "go", post.Group.Slug)
}

func TestCreatePostUnknownGroup(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	_, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "hi", GroupSlug: "nope"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "group")
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: text})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "text %q", text)
		assert.Contains(t, vErr.Fields, "text")
	}

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	_, err := posts.CreatePost(models.Anonymous, CreatePostInput{Text: "hi"})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreatePostWithImage(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, fakeStore{path: "/static/uploads/2024/05/01/x_cat.png"}, fixedClock(postEpoch))

	post, err := posts.CreatePost(actorFor(alice), CreatePostInput{
		Text:      "look at my cat",
		Image:     strings.NewReader("png bytes"),
		ImageName: "cat.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/2024/05/01/x_cat.png", post.Image)
}

func TestCreatePostImageStoreFailure(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, fakeStore{err: errors.New("disk full")}, fixedClock(postEpoch))

	_, err := posts.CreatePost(actorFor(alice), CreatePostInput{
		Text:      "doomed",
		Image:     strings.NewReader("png bytes"),
		ImageName: "cat.png",
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "image")

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Scenario: bob cannot edit alice's post; alice can, and the edit keeps the
// identifier and creation timestamp intact.
func TestEditPostOwnership(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	created, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "Hello world"})
	require.NoError(t, err)

	newText := "Hello again"
	_, err = posts.EditPost(actorFor(bob), created.ID, EditPostInput{Text: &newText})
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := posts.EditPost(actorFor(alice), created.ID, EditPostInput{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "Hello again", edited.Text)
	assert.Equal(t, created.ID, edited.ID)
	assert.Equal(t, alice.ID, edited.AuthorID)
	assert.True(t, edited.CreatedAt.Equal(created.CreatedAt))
}

func TestEditPostAppliesOnlySuppliedFields(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	golang := createGroup(t, db, "Go", "go")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	created, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "original", GroupSlug: "go"})
	require.NoError(t, err)

	// Text-only edit keeps the group tag
	newText := "rewritten"
	edited, err := posts.EditPost(actorFor(alice), created.ID, EditPostInput{Text: &newText})
	require.NoError(t, err)
	require.NotNil(t, edited.GroupID)
	assert.Equal(t, golang.ID, *edited.GroupID)

	// Empty group slug clears the tag without touching the text
	empty := ""
	edited, err = posts.EditPost(actorFor(alice), created.ID, EditPostInput{GroupSlug: &empty})
	require.NoError(t, err)
	assert.Nil(t, edited.GroupID)
	assert.Equal(t, "rewritten", edited.Text)
}

func TestEditPostEmptyTextRejected(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	created, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "keep me"})
	require.NoError(t, err)

	blank := "   "
	_, err = posts.EditPost(actorFor(alice), created.ID, EditPostInput{Text: &blank})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	reloaded, err := posts.GetPost(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", reloaded.Text)
}

func TestEditPostNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	text := "whatever"
	_, err := posts.EditPost(actorFor(alice), 9999, EditPostInput{Text: &text})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPostWithComments(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	clockAt := postEpoch
	posts := NewPostService(db, testLogger, nil, func() time.Time {
		clockAt = clockAt.Add(time.Minute)
		return clockAt
	})

	created, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "discuss"})
	require.NoError(t, err)

	first, err := posts.CreateComment(actorFor(bob), created.ID, "first")
	require.NoError(t, err)
	second, err := posts.CreateComment(actorFor(alice), created.ID, "second")
	require.NoError(t, err)

	post, err := posts.GetPost(created.ID)
	require.NoError(t, err)
	require.Len(t, post.Comments, 2)
	// Newest first
	assert.Equal(t, second.ID, post.Comments[0].ID)
	assert.Equal(t, first.ID, post.Comments[1].ID)
	assert.Equal(t, "bob", post.Comments[1].Author.Username)
}

// Scenario: empty or anonymous comments are rejected and nothing is persisted.
func TestCreateCommentValidation(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	created, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: "discuss"})
	require.NoError(t, err)

	_, err = posts.CreateComment(actorFor(alice), created.ID, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "text")

	_, err = posts.CreateComment(models.Anonymous, created.ID, "hello")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateCommentPostNotFound(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	_, err := posts.CreateComment(actorFor(alice), 12345, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePostSanitizesText(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	posts := NewPostService(db, testLogger, nil, fixedClock(postEpoch))

	post, err := posts.CreatePost(actorFor(alice), CreatePostInput{Text: `hello <script>alert("x")</script>world`})
	require.NoError(t, err)
	assert.NotContains(t, post.Text, "<script>")
	assert.Contains(t, post.Text, "hello")
}
