package user

import (
	"errors"
	"strconv"
)

var (
	// ErrNotFound is returned when no account matches the identifier
	ErrNotFound = errors.New("account not found")
	// ErrNotValid is returned when the account has not been activated
	ErrNotValid = errors.New("account is not valid")
	// ErrBanned is returned when the account has been banned
	ErrBanned = errors.New("account banned")
	// ErrWrongPassword is returned when the password digest does not match
	ErrWrongPassword = errors.New("incorrect password")
	// ErrIMIDExists is returned when registering an IM ID twice
	ErrIMIDExists = errors.New("user ID already exists")
	// ErrUsernameExists is returned when registering a username twice
	ErrUsernameExists = errors.New("username already exists")
	// ErrBadPermission is returned for an unknown permission name
	ErrBadPermission = errors.New("permission does not exist")
)

// Service interface for user operations
type Service interface {
	Login(alias, password string) (*User, error)
	Register(username, passwordHash string, imID int64) (*User, error)
	GetByID(id int64) (*User, error)
	GetByIdentifier(identifier string) (*User, error)
	SetPermission(u *User, permission string, value bool) error
	UpdatePassword(u *User, passwordHash string) error
	IncrementUploads(u *User) error
	PlayerCount() (int64, error)
}

// service struct for user operations
type service struct {
	repo Repository
}

// NewService creates a new user service
func NewService(repo Repository) Service {
	return &service{repo}
}

// Login validates the account state and password for an alias.
// Credential errors come back as sentinel errors so the handler can map
// them to locale-specific messages.
func (s *service) Login(alias, password string) (*User, error) {
	u, err := s.repo.GetByUsername(alias)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	if !u.IsValid {
		return nil, ErrNotValid
	}
	if u.IsBanned {
		return nil, ErrBanned
	}
	if !VerifyPassword(password, u.PasswordHash) {
		return nil, ErrWrongPassword
	}

	return u, nil
}

// Register creates a new account from a precomputed password digest
func (s *service) Register(username, passwordHash string, imID int64) (*User, error) {
	existing, err := s.repo.GetByIMID(imID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrIMIDExists
	}

	existing, err = s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	u := &User{
		Username:     username,
		PasswordHash: passwordHash,
		IMID:         imID,
		IsValid:      true,
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID resolves a user from the internal account ID.
// Absent users return (nil, nil).
func (s *service) GetByID(id int64) (*User, error) {
	return s.repo.GetByID(id)
}

// GetByIdentifier resolves a user from an IM ID (numeric) or username.
// Absent users return (nil, nil).
func (s *service) GetByIdentifier(identifier string) (*User, error) {
	if imID, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return s.repo.GetByIMID(imID)
	}
	return s.repo.GetByUsername(identifier)
}

// SetPermission updates one permission flag on the account
func (s *service) SetPermission(u *User, permission string, value bool) error {
	switch permission {
	case "mod":
		u.IsMod = value
	case "admin":
		u.IsAdmin = value
	case "booster":
		u.IsBooster = value
	case "valid":
		u.IsValid = value
	case "banned":
		u.IsBanned = value
	default:
		return ErrBadPermission
	}
	return s.repo.Update(u)
}

// UpdatePassword replaces the stored password digest
func (s *service) UpdatePassword(u *User, passwordHash string) error {
	u.PasswordHash = passwordHash
	return s.repo.Update(u)
}

// IncrementUploads bumps the account's upload counter
func (s *service) IncrementUploads(u *User) error {
	u.Uploads++
	return s.repo.Update(u)
}

// PlayerCount returns the registered player count
func (s *service) PlayerCount() (int64, error) {
	return s.repo.Count()
}
