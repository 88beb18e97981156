package controllers

import (
	"net/http"

	"postboard/app/models"
	"postboard/app/services"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	debugErrors bool
}

// NewPostController creates a new PostController
func NewPostController(service *services.PostService, debugErrors bool) *PostController {
	return &PostController{
		postService: service,
		debugErrors: debugErrors,
	}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, err, pc.debugErrors)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), postID(r))
	if err != nil {
		sendError(w, r, err, pc.debugErrors)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	in := models.DecodePostInput(r.Body)

	post, err := pc.postService.CreatePost(r.Context(), in)
	if err != nil {
		sendError(w, r, err, pc.debugErrors)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update handles replacing the title and contents of a post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	in := models.DecodePostInput(r.Body)

	post, err := pc.postService.UpdatePost(r.Context(), postID(r), in)
	if err != nil {
		sendError(w, r, err, pc.debugErrors)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post. The response carries the removed post.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.DeletePost(r.Context(), postID(r))
	if err != nil {
		sendError(w, r, err, pc.debugErrors)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
