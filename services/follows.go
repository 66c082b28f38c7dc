package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/policy"
)

// FollowService manages the follow graph between users.
type FollowService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFollowService(db *gorm.DB, logger *zap.Logger) *FollowService {
	return &FollowService{db: db, logger: logger}
}

// Follow creates the edge actor -> author. Following someone twice is a
// no-op: the edge is a get-or-create, and losing a concurrent race to the
// unique index also counts as success.
func (s *FollowService) Follow(actor models.Actor, username string) error {
	author, err := s.userByName(username)
	if err != nil {
		return err
	}

	if dec := policy.CanFollow(actor, author); !dec.Allowed {
		return policyError(dec)
	}

	edge := models.Follow{FollowerID: actor.ID, AuthorID: author.ID}
	err = s.db.
		Where("follower_id = ? AND author_id = ?", actor.ID, author.ID).
		FirstOrCreate(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		s.logger.Error("failed to create follow edge",
			zap.Uint("follower", actor.ID), zap.Uint("author", author.ID), zap.Error(err))
		return ErrInternal
	}
	return nil
}

// Unfollow removes the edge actor -> author; it must exist.
func (s *FollowService) Unfollow(actor models.Actor, username string) error {
	if !actor.IsAuthenticated() {
		return ErrUnauthenticated
	}

	author, err := s.userByName(username)
	if err != nil {
		return err
	}

	res := s.db.
		Where("follower_id = ? AND author_id = ?", actor.ID, author.ID).
		Delete(&models.Follow{})
	if res.Error != nil {
		s.logger.Error("failed to delete follow edge",
			zap.Uint("follower", actor.ID), zap.Uint("author", author.ID), zap.Error(res.Error))
		return ErrInternal
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFollowing reports whether actor has an edge to the given author.
func (s *FollowService) IsFollowing(actor models.Actor, authorID uint) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, nil
	}
	var edges int64
	if err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", actor.ID, authorID).
		Count(&edges).Error; err != nil {
		s.logger.Error("failed to check follow edge", zap.Uint("follower", actor.ID), zap.Error(err))
		return false, ErrInternal
	}
	return edges > 0, nil
}

func (s *FollowService) userByName(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to load user", zap.String("username", username), zap.Error(err))
		return nil, ErrInternal
	}
	return &user, nil
}
