package app

import (
	"errors"

	"blogpress/internal/model"
)

var (
	ErrForbidden    = errors.New("action not permitted")
	ErrUserNotFound = errors.New("user not found")
)

// Actor is the authenticated identity a handler extracts from the session
// token. The zero value is an anonymous caller.
type Actor struct {
	ID       uint
	Username string
	Admin    bool
}

type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	List(offset, limit int) ([]model.User, error)
	UpdateAccount(id uint, username, email string) error
	UpdatePasswordHash(id uint, passwordHash string) error
	SetAdmin(id uint, admin bool) error
	Delete(id uint) error
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(actor Actor, page, perPage int) ([]model.User, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	offset, limit := pageBounds(page, perPage)
	return s.users.List(offset, limit)
}

func (s *UserService) GetUserDetail(actor Actor, id uint) (*model.User, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SetAdminStatus toggles the administrator flag. Only an administrator may
// call it; the rejection happens before the target is even loaded, so a
// forbidden call leaves no trace.
func (s *UserService) SetAdminStatus(actor Actor, userID uint, admin bool) error {
	if !actor.Admin {
		return ErrForbidden
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.SetAdmin(userID, admin)
}

// DeleteUser removes an account. The owner may delete themselves without
// admin status; an administrator may delete anyone. The returned flag says
// whether this was an admin deleting someone else, which only changes what
// the caller tells the user afterwards.
func (s *UserService) DeleteUser(actor Actor, targetID uint) (adminDelete bool, err error) {
	if targetID == 0 || actor.ID == 0 {
		return false, ErrForbidden
	}
	adminDelete = actor.ID != targetID
	if adminDelete && !actor.Admin {
		return false, ErrForbidden
	}

	user, err := s.users.GetByID(targetID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}

	if err := s.users.Delete(targetID); err != nil {
		return false, err
	}
	return adminDelete, nil
}

func pageBounds(page, perPage int) (offset, limit int) {
	if perPage <= 0 {
		perPage = 12
	}
	if page <= 0 {
		page = 1
	}
	return (page - 1) * perPage, perPage
}
