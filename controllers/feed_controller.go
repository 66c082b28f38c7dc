package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/services"
	"github.com/quillhub/quill/utils"
)

// FeedController serves the four paginated post feeds.
type FeedController struct {
	feeds *services.FeedService
}

func NewFeedController(feeds *services.FeedService) *FeedController {
	return &FeedController{feeds: feeds}
}

// Global returns all posts, newest first.
func (f *FeedController) Global(ctx *gin.Context) {
	page, err := f.feeds.Global(parsePage(ctx.Query("page")))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, page)
}

// Group returns the posts of the group identified by slug.
func (f *FeedController) Group(ctx *gin.Context) {
	feed, err := f.feeds.Group(ctx.Param("slug"), parsePage(ctx.Query("page")))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, feed)
}

// Author returns the named user's posts with profile context. The follow
// flag reflects the requesting actor when one is signed in.
func (f *FeedController) Author(ctx *gin.Context) {
	actor := middleware.Actor(ctx)
	feed, err := f.feeds.Author(ctx.Param("username"), actor, parsePage(ctx.Query("page")))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, feed)
}

// Following returns the personalized feed of followed authors.
func (f *FeedController) Following(ctx *gin.Context) {
	actor := middleware.Actor(ctx)
	page, err := f.feeds.Following(actor, parsePage(ctx.Query("page")))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, page)
}
