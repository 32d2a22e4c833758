package service

import (
	"context"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	Title   string
	Content string
}

type UpdatePostInput struct {
	PostID  uint
	Title   string
	Content string
}

type ListPostsInput struct {
	Limit  int
	Offset int
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.List(ctx, in.Limit, in.Offset)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost writes the post and then appends its ID to the author's
// reference list. The two writes are not transactional: if the second one
// fails, the post already exists with no back-reference. That orphan is
// logged and the error surfaced, there is no rollback of the first write.
func (s *PostService) CreatePost(ctx context.Context, viewer *auth.Identity, in CreatePostInput) (*models.Post, error) {
	if viewer == nil {
		return nil, models.NewForbiddenError("Login required")
	}
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:          in.Title,
		Content:        in.Content,
		AuthorUsername: viewer.Username,
		Comments:       models.Comments{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := s.userRepo.AppendPostRef(ctx, viewer.UserID, post.ID); err != nil {
		middleware.Logger.WarnContext(ctx, "post created but author reference not recorded",
			"post_id", post.ID,
			"user_id", viewer.UserID,
			"error", err)
		return nil, err
	}

	middleware.PostsCreated.Inc()
	return post, nil
}

// UpdatePost replaces a post's title and content. Any authenticated user may
// edit any post; the author never changes.
func (s *PostService) UpdatePost(ctx context.Context, viewer *auth.Identity, in UpdatePostInput) (*models.Post, error) {
	if viewer == nil {
		return nil, models.NewForbiddenError("Login required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		if err := validation.ValidatePostTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if err := validation.ValidatePostContent(in.Content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = in.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and then drops its ID from the caller's own
// reference list. Any authenticated user may delete any post; when the
// caller is not the author, the author's list keeps a dangling reference.
func (s *PostService) DeletePost(ctx context.Context, viewer *auth.Identity, postID uint) error {
	if viewer == nil {
		return models.NewForbiddenError("Login required")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	if err := s.userRepo.RemovePostRef(ctx, viewer.UserID, postID); err != nil {
		middleware.Logger.WarnContext(ctx, "post deleted but caller reference not removed",
			"post_id", postID,
			"user_id", viewer.UserID,
			"error", err)
		return err
	}
	return nil
}

// AddComment appends a comment to a post's embedded comment list. The
// comment's author is the verified identity, never a client-supplied name.
func (s *PostService) AddComment(ctx context.Context, viewer *auth.Identity, postID uint, body string) (*models.Post, error) {
	if viewer == nil {
		return nil, models.NewForbiddenError("Login required")
	}
	if err := validation.ValidateCommentBody(body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment := models.Comment{
		AuthorUsername: viewer.Username,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	post, err := s.postRepo.AppendComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	middleware.CommentsCreated.Inc()
	return post, nil
}
