// Package statservice computes aggregate statistics over a blog collection.
// Every function is a pure, single left-to-right pass over its input: no
// I/O, no mutation. Ties are broken by first occurrence — a later candidate
// replaces the current best only with a strictly greater value.
package statservice

import (
	"github.com/sushihentaime/bloglist/internal/blogservice"
)

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of all blogs. Zero for an empty collection.
func TotalLikes(blogs []blogservice.Blog) int {
	total := 0
	for _, blog := range blogs {
		total += blog.Likes
	}

	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// collection. The first blog with the maximal count wins.
func FavoriteBlog(blogs []blogservice.Blog) *blogservice.Blog {
	if len(blogs) == 0 {
		return nil
	}

	favorite := &blogs[0]
	for i := range blogs[1:] {
		if blogs[i+1].Likes > favorite.Likes {
			favorite = &blogs[i+1]
		}
	}

	return favorite
}

// MostBlogs returns the author with the most blogs, or nil for an empty
// collection. The first author to reach the maximal count wins.
func MostBlogs(blogs []blogservice.Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}

	counts := make(map[string]int)

	var top AuthorBlogs
	for _, blog := range blogs {
		counts[blog.Author]++
		if counts[blog.Author] > top.Blogs {
			top = AuthorBlogs{Author: blog.Author, Blogs: counts[blog.Author]}
		}
	}

	return &top
}

// MostLikes returns the author whose blogs sum to the most likes, or nil for
// an empty collection. The first author to reach the maximal total wins.
func MostLikes(blogs []blogservice.Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}

	totals := make(map[string]int)

	var top AuthorLikes
	first := true
	for _, blog := range blogs {
		totals[blog.Author] += blog.Likes
		if first || totals[blog.Author] > top.Likes {
			top = AuthorLikes{Author: blog.Author, Likes: totals[blog.Author]}
			first = false
		}
	}

	return &top
}
