package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// UserID is bound from the authenticated caller at creation and never
	// changes afterwards.
	UserID    int           `json:"user_id"`
	User      *OwnerSummary `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// OwnerSummary is the read-time projection of the owning user embedded in
// blog listings. A blog whose owner was deleted lists without one.
type OwnerSummary struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
