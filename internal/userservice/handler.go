package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

var ErrAuthenticationFailure = errors.New("invalid username or password")

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
		c:  c,
	}
}

// CreateUser registers a new account and publishes a user.created event. The
// password is stored only as a bcrypt hash. A duplicate username fails with
// ErrDuplicateUsername rather than overwriting the existing account.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Blogs:    []BlogSummary{},
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	if s.mb != nil {
		event := common.UserCreatedEvent{
			UserID:     u.ID,
			Username:   u.Username,
			Name:       u.Name,
			SignedUpAt: u.CreatedAt,
		}

		data, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}

		err = s.mb.Publish(ctx, data, common.UserCreatedKey, common.UserExchange)
		if err != nil {
			return nil, err
		}
	}

	return &u, nil
}

// GetUsers lists all users with their blog id lists resolved to summary
// records for display.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	users, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		summaries, err := s.m.blogSummaries(ctx, users[i].BlogIDs)
		if err != nil {
			return nil, err
		}
		users[i].Blogs = summaries
	}

	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if s.c != nil {
		if cached, ok := s.c.Get(common.CacheKeyUser(id)); ok {
			if user, ok := cached.(*User); ok {
				return user, nil
			}
		}
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.Set(common.CacheKeyUser(id), user, 5*time.Minute)
	}

	return user, nil
}

// LoginUser checks the credentials and returns the stored user on success.
// Token issuance is the auth service's job.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*User, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

// AppendBlogID records a newly created blog in the owner's blog id list. It
// is the second half of the create-blog write and is not transactional with
// the blog insert.
func (s *UserService) AppendBlogID(ctx context.Context, userID, blogID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.appendBlogID(ctx, userID, blogID)
	if err != nil {
		return err
	}

	if s.c != nil {
		s.c.Delete(common.CacheKeyUser(userID))
	}

	return nil
}

// DeleteUser removes the account. Blogs authored by the user are left in
// place on purpose; their owner simply no longer resolves.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.delete(ctx, id)
	if err != nil {
		return err
	}

	if s.c != nil {
		s.c.Delete(common.CacheKeyUser(id))
		// cached blog listings embed the owner summary
		s.c.Delete(common.CacheKeyBlogs())
	}

	return nil
}
