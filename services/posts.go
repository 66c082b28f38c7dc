package services

import (
	"errors"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/policy"
	"github.com/quillhub/quill/storage"
	"github.com/quillhub/quill/utils"
)

// PostService is the post/comment lifecycle: the only component that mutates
// posts and comments. All authorization goes through the policy package.
type PostService struct {
	db     *gorm.DB
	logger *zap.Logger
	store  storage.Storage
	now    func() time.Time
}

// NewPostService wires the lifecycle service. clock may be nil, in which case
// wall time is used; tests supply a fixed clock.
func NewPostService(db *gorm.DB, logger *zap.Logger, store storage.Storage, clock func() time.Time) *PostService {
	if clock == nil {
		clock = time.Now
	}
	return &PostService{db: db, logger: logger, store: store, now: clock}
}

// CreatePostInput carries the new post fields. Image is optional; ImageName
// must accompany it for extension checks.
type CreatePostInput struct {
	Text      string
	GroupSlug string
	Image     io.Reader
	ImageName string
}

// EditPostInput updates only the non-nil fields. An empty GroupSlug clears
// the group tag.
type EditPostInput struct {
	Text      *string
	GroupSlug *string
	Image     io.Reader
	ImageName string
}

// CreatePost creates a post owned by actor, timestamped from the injected
// clock. The text is sanitized and must be non-empty.
func (s *PostService) CreatePost(actor models.Actor, in CreatePostInput) (*models.Post, error) {
	if dec := policy.CanCreatePost(actor); !dec.Allowed {
		return nil, policyError(dec)
	}

	text := utils.Sanitize(strings.TrimSpace(in.Text))
	if text == "" {
		return nil, newValidationError("text", "text cannot be empty")
	}

	var groupID *uint
	if in.GroupSlug != "" {
		group, err := s.groupBySlug(in.GroupSlug)
		if err != nil {
			return nil, err
		}
		groupID = &group.ID
	}

	imagePath := ""
	if in.Image != nil {
		path, err := s.store.Store(in.Image, in.ImageName)
		if err != nil {
			s.logger.Warn("image upload rejected", zap.String("name", in.ImageName), zap.Error(err))
			return nil, newValidationError("image", "could not store image")
		}
		imagePath = path
	}

	now := s.now()
	post := models.Post{
		AuthorID:  actor.ID,
		GroupID:   groupID,
		Text:      text,
		Image:     imagePath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Create(&post).Error; err != nil {
		s.logger.Error("failed to create post", zap.Uint("author", actor.ID), zap.Error(err))
		return nil, ErrInternal
	}

	return s.reload(post.ID)
}

// EditPost applies the supplied fields to the actor's own post. The author,
// identifier, and creation timestamp never change.
func (s *PostService) EditPost(actor models.Actor, postID uint, in EditPostInput) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load post", zap.Uint("post", postID), zap.Error(err))
		return nil, ErrInternal
	}

	if dec := policy.CanEditPost(actor, &post); !dec.Allowed {
		return nil, policyError(dec)
	}

	if in.Text != nil {
		text := utils.Sanitize(strings.TrimSpace(*in.Text))
		if text == "" {
			return nil, newValidationError("text", "text cannot be empty")
		}
		post.Text = text
	}

	if in.GroupSlug != nil {
		if *in.GroupSlug == "" {
			post.GroupID = nil
		} else {
			group, err := s.groupBySlug(*in.GroupSlug)
			if err != nil {
				return nil, err
			}
			post.GroupID = &group.ID
		}
	}

	if in.Image != nil {
		path, err := s.store.Store(in.Image, in.ImageName)
		if err != nil {
			s.logger.Warn("image upload rejected", zap.String("name", in.ImageName), zap.Error(err))
			return nil, newValidationError("image", "could not store image")
		}
		post.Image = path
	}

	post.UpdatedAt = s.now()
	if err := s.db.Model(&post).
		Select("Text", "GroupID", "Image", "UpdatedAt").
		Updates(&post).Error; err != nil {
		s.logger.Error("failed to update post", zap.Uint("post", postID), zap.Error(err))
		return nil, ErrInternal
	}

	return s.reload(post.ID)
}

// GetPost returns a post with its author, group, and comments in canonical
// order, for the detail view.
func (s *PostService) GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.
		Preload("Author").
		Preload("Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order(canonicalOrder)
		}).
		Preload("Comments.Author").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load post", zap.Uint("post", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return &post, nil
}

// CreateComment adds a comment by actor to an existing post. Comments cannot
// be edited afterwards; no edit operation exists.
func (s *PostService) CreateComment(actor models.Actor, postID uint, text string) (*models.Comment, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load post", zap.Uint("post", postID), zap.Error(err))
		return nil, ErrInternal
	}

	if dec := policy.CanCreateComment(actor); !dec.Allowed {
		return nil, policyError(dec)
	}

	text = utils.Sanitize(strings.TrimSpace(text))
	if text == "" {
		return nil, newValidationError("text", "text cannot be empty")
	}

	comment := models.Comment{
		PostID:    post.ID,
		AuthorID:  actor.ID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		s.logger.Error("failed to create comment", zap.Uint("post", post.ID), zap.Error(err))
		return nil, ErrInternal
	}

	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		s.logger.Error("failed to reload comment", zap.Uint("comment", comment.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return &comment, nil
}

func (s *PostService) groupBySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("group", "unknown group")
		}
		s.logger.Error("failed to load group", zap.String("slug", slug), zap.Error(err))
		return nil, ErrInternal
	}
	return &group, nil
}

func (s *PostService) reload(postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Author").Preload("Group").First(&post, postID).Error; err != nil {
		s.logger.Error("failed to reload post", zap.Uint("post", postID), zap.Error(err))
		return nil, ErrInternal
	}
	return &post, nil
}

// policyError maps a policy denial onto the service error taxonomy.
func policyError(dec policy.Decision) error {
	switch dec.Reason {
	case policy.ReasonUnauthenticated:
		return ErrUnauthenticated
	case policy.ReasonSelfFollow:
		return ErrSelfFollow
	default:
		return ErrForbidden
	}
}
