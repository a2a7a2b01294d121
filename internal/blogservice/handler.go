package blogservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{
		m: newBlogModel(db),
		c: c,
	}
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
	UserID int    `json:"user_id"`
}

type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// CreateBlog stores a new blog owned by the given user. Likes default to
// zero when omitted.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	likes := 0
	if req.Likes != nil {
		likes = *req.Likes
	}

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateURL(v, req.URL)
	validateLikes(v, likes)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  likes,
		UserID: req.UserID,
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.invalidate(blog.ID)

	return &blog, nil
}

// GetBlogs lists all blogs with their owner summaries resolved.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
			if blogs, ok := cached.([]Blog); ok {
				return blogs, nil
			}
		}
	}

	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyBlogs(), blogs, time.Minute)
	}

	return blogs, nil
}

func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
			if blog, ok := cached.(*Blog); ok {
				return blog, nil
			}
		}
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyBlog(id), blog, time.Minute)
	}

	return blog, nil
}

// UpdateBlog applies a partial update restricted to title, author, url and
// likes. Supplying an empty title or url fails the same validation as
// creation. The owner binding is not touched.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Author != nil {
		blog.Author = *req.Author
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	validateTitle(v, blog.Title)
	validateURL(v, blog.URL)
	validateLikes(v, blog.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.invalidate(id)

	return blog, nil
}

// DeleteBlog removes the blog. The ownership check happens at the HTTP
// boundary where the caller identity lives; the former owner's blog id list
// is left as is.
func (s *BlogService) DeleteBlog(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate(id)

	return nil
}

func (s *BlogService) invalidate(id int) {
	if s.c == nil {
		return
	}

	s.c.Delete(common.CacheKeyBlogs())
	s.c.Delete(common.CacheKeyBlog(id))
}
