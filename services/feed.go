package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillhub/quill/models"
)

// canonicalOrder is the total order shared by every feed: newest first,
// ties broken by identifier so pagination stays stable for posts created in
// the same instant.
const canonicalOrder = "created_at DESC, id DESC"

// FeedService composes the four paginated post feeds.
type FeedService struct {
	db       *gorm.DB
	logger   *zap.Logger
	pageSize int
}

// AuthorFeed is the author view: their posts plus profile context.
type AuthorFeed struct {
	Author    models.User `json:"author"`
	Page      *FeedPage   `json:"page"`
	QtyPosts  int64       `json:"qty_posts"`
	Following bool        `json:"following"`
}

// GroupFeed is the group view: the group plus its posts.
type GroupFeed struct {
	Group models.Group `json:"group"`
	Page  *FeedPage    `json:"page"`
}

func NewFeedService(db *gorm.DB, logger *zap.Logger, pageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{db: db, logger: logger, pageSize: pageSize}
}

// Global returns all posts, newest first.
func (s *FeedService) Global(page int) (*FeedPage, error) {
	return s.paginate(s.db.Model(&models.Post{}), page)
}

// Group returns the posts tagged with the group identified by slug.
func (s *FeedService) Group(slug string, page int) (*GroupFeed, error) {
	var group models.Group
	if err := s.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load group", zap.String("slug", slug), zap.Error(err))
		return nil, ErrInternal
	}
	fp, err := s.paginate(s.db.Model(&models.Post{}).Where("group_id = ?", group.ID), page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: fp}, nil
}

// Author returns the named user's posts along with their total post count and
// whether actor already follows them.
func (s *FeedService) Author(username string, actor models.Actor, page int) (*AuthorFeed, error) {
	var author models.User
	if err := s.db.Where("username = ?", username).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load author", zap.String("username", username), zap.Error(err))
		return nil, ErrInternal
	}

	fp, err := s.paginate(s.db.Model(&models.Post{}).Where("author_id = ?", author.ID), page)
	if err != nil {
		return nil, err
	}

	following := false
	if actor.IsAuthenticated() && actor.ID != author.ID {
		var edges int64
		if err := s.db.Model(&models.Follow{}).
			Where("follower_id = ? AND author_id = ?", actor.ID, author.ID).
			Count(&edges).Error; err != nil {
			s.logger.Error("failed to check follow edge", zap.Uint("follower", actor.ID), zap.Error(err))
			return nil, ErrInternal
		}
		following = edges > 0
	}

	return &AuthorFeed{Author: author, Page: fp, QtyPosts: fp.Total, Following: following}, nil
}

// Following returns the posts of every author the actor follows.
func (s *FeedService) Following(actor models.Actor, page int) (*FeedPage, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	followed := s.db.Model(&models.Follow{}).Select("author_id").Where("follower_id = ?", actor.ID)
	return s.paginate(s.db.Model(&models.Post{}).Where("author_id IN (?)", followed), page)
}

func (s *FeedService) paginate(query *gorm.DB, page int) (*FeedPage, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		s.logger.Error("failed to count feed posts", zap.Error(err))
		return nil, ErrInternal
	}

	page, totalPages := clampPage(page, total, s.pageSize)

	var posts []models.Post
	if err := query.Session(&gorm.Session{}).
		Preload("Author").
		Preload("Group").
		Order(canonicalOrder).
		Offset((page - 1) * s.pageSize).
		Limit(s.pageSize).
		Find(&posts).Error; err != nil {
		s.logger.Error("failed to list feed posts", zap.Error(err))
		return nil, ErrInternal
	}

	return &FeedPage{Items: posts, Page: page, TotalPages: totalPages, Total: total}, nil
}
