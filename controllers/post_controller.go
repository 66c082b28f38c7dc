package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/config"
	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/services"
	"github.com/quillhub/quill/utils"
)

// PostController manages the post/comment lifecycle endpoints.
type PostController struct {
	posts *services.PostService
	cfg   config.AppConfig
}

func NewPostController(posts *services.PostService, cfg config.AppConfig) *PostController {
	return &PostController{posts: posts, cfg: cfg}
}

// CreatePost accepts a multipart form (text, group, image) and creates a post
// owned by the authenticated actor.
func (p *PostController) CreatePost(ctx *gin.Context) {
	in := services.CreatePostInput{
		Text:      ctx.PostForm("text"),
		GroupSlug: ctx.PostForm("group"),
	}

	if fh, err := ctx.FormFile("image"); err == nil && fh != nil {
		file, err := fh.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40030, "could not read uploaded image")
			return
		}
		defer file.Close()
		in.Image = file
		in.ImageName = fh.Filename
	}

	post, err := p.posts.CreatePost(middleware.Actor(ctx), in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost edits the actor's own post. Only fields present in the form are
// applied; an empty group field clears the tag.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid post id")
		return
	}

	var in services.EditPostInput
	if text, ok := ctx.GetPostForm("text"); ok {
		in.Text = &text
	}
	if slug, ok := ctx.GetPostForm("group"); ok {
		in.GroupSlug = &slug
	}
	if fh, err := ctx.FormFile("image"); err == nil && fh != nil {
		file, err := fh.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40030, "could not read uploaded image")
			return
		}
		defer file.Close()
		in.Image = file
		in.ImageName = fh.Filename
	}

	post, err := p.posts.EditPost(middleware.Actor(ctx), postID, in)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// GetPost returns a single post with comments and the shortened title text.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid post id")
		return
	}

	post, err := p.posts.GetPost(postID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"post":             post,
		"short_text_title": post.ShortText(p.cfg.PostTitleChars),
	})
}

// CreateComment adds a comment by the authenticated actor to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid post id")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	comment, err := p.posts.CreateComment(middleware.Actor(ctx), postID, req.Text)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}
