package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

var AnonymousUser = User{}

type UserService struct {
	m  *UserModel
	mb common.MessageProducer
	c  *common.Cache
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Password Password `json:"-"`
	// BlogIDs is the ordered list of blogs the user authored. It is appended
	// to on every blog creation and deliberately never pruned when a blog is
	// deleted; readers resolve it through a join so dangling ids drop out.
	BlogIDs   []int64       `json:"-"`
	Blogs     []BlogSummary `json:"blogs"`
	CreatedAt time.Time     `json:"created_at"`
}

// BlogSummary is the read-time projection of a referenced blog embedded in
// user listings. Computed per request, never stored.
type BlogSummary struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
