package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/services"
	"github.com/quillhub/quill/utils"
)

// ProfileController manages the follow graph endpoints.
type ProfileController struct {
	follows *services.FollowService
}

func NewProfileController(follows *services.FollowService) *ProfileController {
	return &ProfileController{follows: follows}
}

// Follow subscribes the actor to the named author. Following someone twice
// is a no-op.
func (p *ProfileController) Follow(ctx *gin.Context) {
	if err := p.follows.Follow(middleware.Actor(ctx), ctx.Param("username")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"following": true})
}

// Unfollow removes the actor's subscription to the named author.
func (p *ProfileController) Unfollow(ctx *gin.Context) {
	if err := p.follows.Unfollow(middleware.Actor(ctx), ctx.Param("username")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"following": false})
}
