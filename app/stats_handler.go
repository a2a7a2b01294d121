package main

import (
	"net/http"

	"github.com/sushihentaime/bloglist/internal/statservice"
)

// blogStatsHandler exposes the aggregate statistics over the whole blog
// collection.
func (app *application) blogStatsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	stats := envelope{
		"blog_count":    len(blogs),
		"total_likes":   statservice.TotalLikes(blogs),
		"favorite_blog": statservice.FavoriteBlog(blogs),
		"most_blogs":    statservice.MostBlogs(blogs),
		"most_likes":    statservice.MostLikes(blogs),
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"stats": stats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
