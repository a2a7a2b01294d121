package main

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterUserHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	tests := []struct {
		name            string
		payload         map[string]string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "valid user",
			payload: map[string]string{
				"username": "testuser",
				"name":     "Test User",
				"password": "sekret",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate username",
			payload: map[string]string{
				"username": "testuser",
				"password": "sekret",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "username must be unique",
		},
		{
			name: "missing username",
			payload: map[string]string{
				"password": "sekret",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "username must be provided",
		},
		{
			name: "short username",
			payload: map[string]string{
				"username": "ab",
				"password": "sekret",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "username must be at least 3 characters long",
		},
		{
			name: "missing password",
			payload: map[string]string{
				"username": "newuser",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "password must be provided",
		},
		{
			name: "short password",
			payload: map[string]string{
				"username": "newuser",
				"password": "ab",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "password must be at least 3 characters long",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := countRows(t, db, "users")

			status, _, body := ts.post(t, "/v1/users", tc.payload, nil)
			assert.Equal(t, tc.expectedStatus, status)

			if tc.expectedStatus == http.StatusCreated {
				user, ok := body["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tc.payload["username"], user["username"])
				assert.NotContains(t, user, "password")
				assert.NotContains(t, user, "password_hash")
				assert.Equal(t, []any{}, user["blogs"])
				assert.Equal(t, before+1, countRows(t, db, "users"))
			} else {
				assert.Equal(t, tc.expectedMessage, body["error"])
				assert.Equal(t, before, countRows(t, db, "users"))
			}
		})
	}
}

func TestLoginUserHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, _ := ts.post(t, "/v1/users", map[string]string{
		"username": "testuser",
		"name":     "Test User",
		"password": "sekret",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	t.Run("valid credentials", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/login", map[string]string{
			"username": "testuser",
			"password": "sekret",
		}, nil)

		assert.Equal(t, http.StatusOK, status)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, "testuser", body["username"])
		assert.Equal(t, "Test User", body["name"])
	})

	t.Run("wrong password", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/login", map[string]string{
			"username": "testuser",
			"password": "wrong",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "invalid username or password", body["error"])
	})

	t.Run("unknown username", func(t *testing.T) {
		status, _, _ := ts.post(t, "/v1/login", map[string]string{
			"username": "nobody",
			"password": "sekret",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestCreateBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, userID := ts.registerAndLogin(t, "testuser", "sekret")

	t.Run("no authorization header", func(t *testing.T) {
		// the missing token must fail before the body is even looked at
		status, _, body := ts.post(t, "/v1/blogs", map[string]any{}, nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "authentication required", body["error"])
		assert.Equal(t, 0, countRows(t, db, "blogs"))
	})

	t.Run("valid blog with likes", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"title":  "Go Proverbs",
			"author": "Rob Pike",
			"url":    "https://go-proverbs.github.io/",
			"likes":  7,
		}, &token)

		assert.Equal(t, http.StatusCreated, status)

		blog, ok := body["blog"].(map[string]any)
		assert.True(t, ok)
		assert.NotZero(t, blog["id"])
		assert.Equal(t, float64(7), blog["likes"])
		assert.Equal(t, float64(userID), blog["user_id"])
	})

	t.Run("likes default to zero", func(t *testing.T) {
		status, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"title": "Effective Go",
			"url":   "https://go.dev/doc/effective_go",
		}, &token)

		assert.Equal(t, http.StatusCreated, status)

		blog, ok := body["blog"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, float64(0), blog["likes"])
	})

	t.Run("missing title", func(t *testing.T) {
		before := countRows(t, db, "blogs")

		status, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"url": "https://example.com",
		}, &token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "title must be provided", body["error"])
		assert.Equal(t, before, countRows(t, db, "blogs"))
	})

	t.Run("missing url", func(t *testing.T) {
		before := countRows(t, db, "blogs")

		status, _, body := ts.post(t, "/v1/blogs", map[string]any{
			"title": "No URL",
		}, &token)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "url must be provided", body["error"])
		assert.Equal(t, before, countRows(t, db, "blogs"))
	})

	t.Run("owner back-reference is maintained", func(t *testing.T) {
		status, _, body := ts.get(t, "/v1/users", nil)
		assert.Equal(t, http.StatusOK, status)

		users, ok := body["users"].([]any)
		assert.True(t, ok)
		assert.Len(t, users, 1)

		blogs, ok := users[0].(map[string]any)["blogs"].([]any)
		assert.True(t, ok)
		assert.Len(t, blogs, 2)

		summary := blogs[0].(map[string]any)
		assert.Equal(t, "Go Proverbs", summary["title"])
		assert.NotContains(t, summary, "likes")
	})
}

func TestListBlogsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := ts.registerAndLogin(t, "testuser", "sekret")

	status, _, _ := ts.post(t, "/v1/blogs", map[string]any{
		"title":  "Go Proverbs",
		"author": "Rob Pike",
		"url":    "https://go-proverbs.github.io/",
		"likes":  7,
	}, &token)
	assert.Equal(t, http.StatusCreated, status)

	status, _, body := ts.get(t, "/v1/blogs", nil)
	assert.Equal(t, http.StatusOK, status)

	blogs, ok := body["blogs"].([]any)
	assert.True(t, ok)
	assert.Len(t, blogs, 1)

	blog := blogs[0].(map[string]any)
	assert.NotContains(t, blog, "_id")
	assert.NotZero(t, blog["id"])

	owner, ok := blog["user"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "testuser", owner["username"])
	assert.Equal(t, "Test User", owner["name"])
}

func TestUpdateBlogHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := ts.registerAndLogin(t, "testuser", "sekret")

	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title": "Go Proverbs",
		"url":   "https://go-proverbs.github.io/",
	}, &token)
	assert.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	t.Run("like a blog without authentication", func(t *testing.T) {
		status, _, body := ts.put(t, blogPath(blogID), map[string]any{"likes": 42}, nil)

		assert.Equal(t, http.StatusOK, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, float64(42), blog["likes"])
		assert.Equal(t, "Go Proverbs", blog["title"])
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		status, _, body := ts.put(t, blogPath(blogID), map[string]any{"author": "Rob Pike"}, nil)

		assert.Equal(t, http.StatusOK, status)

		blog := body["blog"].(map[string]any)
		assert.Equal(t, "Rob Pike", blog["author"])
		assert.Equal(t, float64(42), blog["likes"])
	})

	t.Run("empty title fails validation", func(t *testing.T) {
		status, _, body := ts.put(t, blogPath(blogID), map[string]any{"title": ""}, nil)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "title must be provided", body["error"])
	})

	t.Run("unknown id", func(t *testing.T) {
		status, _, body := ts.put(t, "/v1/blogs/999999", map[string]any{"likes": 1}, nil)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "blog not found", body["error"])
	})

	t.Run("malformed id", func(t *testing.T) {
		status, _, body := ts.put(t, "/v1/blogs/not-an-id", map[string]any{"likes": 1}, nil)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "malformatted id", body["error"])
	})
}

func TestDeleteBlogHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	ownerToken, _ := ts.registerAndLogin(t, "owner", "sekret")
	otherToken, _ := ts.registerAndLogin(t, "other", "sekret")

	status, _, body := ts.post(t, "/v1/blogs", map[string]any{
		"title": "Go Proverbs",
		"url":   "https://go-proverbs.github.io/",
	}, &ownerToken)
	assert.Equal(t, http.StatusCreated, status)

	blogID := int(body["blog"].(map[string]any)["id"].(float64))

	t.Run("no authorization header", func(t *testing.T) {
		status, _, _ := ts.delete(t, blogPath(blogID), nil)

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, 1, countRows(t, db, "blogs"))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		status, _, body := ts.delete(t, blogPath(blogID), &otherToken)

		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "only the creator can delete a blog", body["error"])
		assert.Equal(t, 1, countRows(t, db, "blogs"))
	})

	t.Run("malformed id", func(t *testing.T) {
		status, _, body := ts.delete(t, "/v1/blogs/not-an-id", &ownerToken)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "malformatted id", body["error"])
	})

	t.Run("unknown id", func(t *testing.T) {
		status, _, body := ts.delete(t, "/v1/blogs/999999", &ownerToken)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "blog not found", body["error"])
	})

	t.Run("owner deletes the blog", func(t *testing.T) {
		status, _, _ := ts.delete(t, blogPath(blogID), &ownerToken)

		assert.Equal(t, http.StatusNoContent, status)
		assert.Equal(t, 0, countRows(t, db, "blogs"))
	})

	t.Run("deleting twice is a 404", func(t *testing.T) {
		status, _, _ := ts.delete(t, blogPath(blogID), &ownerToken)

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	app, db := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, userID := ts.registerAndLogin(t, "testuser", "sekret")

	status, _, _ := ts.post(t, "/v1/blogs", map[string]any{
		"title": "Orphaned Blog",
		"url":   "https://example.com",
	}, &token)
	assert.Equal(t, http.StatusCreated, status)

	t.Run("malformed id", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/users/not-an-id", nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown id", func(t *testing.T) {
		status, _, _ := ts.delete(t, "/v1/users/999999", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("deleting a user leaves their blogs behind", func(t *testing.T) {
		// warm the blog list cache while the owner still resolves
		status, _, body := ts.get(t, "/v1/blogs", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body["blogs"].([]any)[0].(map[string]any), "user")

		status, _, _ = ts.delete(t, userPath(userID), nil)
		assert.Equal(t, http.StatusNoContent, status)

		assert.Equal(t, 0, countRows(t, db, "users"))
		assert.Equal(t, 1, countRows(t, db, "blogs"))

		// the orphaned blog still lists, just without an owner summary
		status, _, body = ts.get(t, "/v1/blogs", nil)
		assert.Equal(t, http.StatusOK, status)

		blogs := body["blogs"].([]any)
		assert.Len(t, blogs, 1)
		assert.NotContains(t, blogs[0].(map[string]any), "user")
	})
}

func TestBlogStatsHandler(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	token, _ := ts.registerAndLogin(t, "testuser", "sekret")

	for _, blog := range []map[string]any{
		{"title": "One", "author": "A", "url": "https://example.com/1", "likes": 5},
		{"title": "Two", "author": "B", "url": "https://example.com/2", "likes": 12},
		{"title": "Three", "author": "A", "url": "https://example.com/3", "likes": 10},
	} {
		status, _, _ := ts.post(t, "/v1/blogs", blog, &token)
		assert.Equal(t, http.StatusCreated, status)
	}

	status, _, body := ts.get(t, "/v1/blogs/stats", nil)
	assert.Equal(t, http.StatusOK, status)

	stats, ok := body["stats"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(3), stats["blog_count"])
	assert.Equal(t, float64(27), stats["total_likes"])

	favorite := stats["favorite_blog"].(map[string]any)
	assert.Equal(t, "Two", favorite["title"])

	mostBlogs := stats["most_blogs"].(map[string]any)
	assert.Equal(t, "A", mostBlogs["author"])
	assert.Equal(t, float64(2), mostBlogs["blogs"])

	mostLikes := stats["most_likes"].(map[string]any)
	assert.Equal(t, "A", mostLikes["author"])
	assert.Equal(t, float64(15), mostLikes["likes"])
}

func blogPath(id int) string {
	return "/v1/blogs/" + strconv.Itoa(id)
}

func userPath(id int) string {
	return "/v1/users/" + strconv.Itoa(id)
}
