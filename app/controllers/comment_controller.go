package controllers

import (
	"net/http"

	"postboard/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	debugErrors    bool
}

// NewCommentController creates a new CommentController
func NewCommentController(service *services.CommentService, debugErrors bool) *CommentController {
	return &CommentController{
		commentService: service,
		debugErrors:    debugErrors,
	}
}

// Index lists the comments of the post named by the {id} path variable
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListPostComments(r.Context(), postID(r))
	if err != nil {
		sendError(w, r, err, cc.debugErrors)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}
