package services

import (
	"errors"

	"github.com/servicedesk/backend/internal/apperrors"
	"github.com/servicedesk/backend/internal/logger"
	"github.com/servicedesk/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the role and user directory. It owns credential hashing:
// plaintext passwords are hashed once at creation and never stored or logged.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) CreateUser(user *models.User) (*models.User, error) {
	if len(user.Roles) == 0 {
		role, err := s.GetRoleByName(models.RoleUser)
		if err != nil {
			var notFound *apperrors.NotFoundError
			if errors.As(err, &notFound) {
				// A missing default role is a deployment defect, not a
				// recoverable per-call failure.
				return nil, apperrors.Configuration("default role not found")
			}
			return nil, err
		}
		user.Roles = []models.Role{*role}
	}

	existing, err := s.GetUserByEmail(user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Storage("hash password", err)
	}
	user.Password = string(hashed)

	user.ID = 0
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserConflict(user)
		}
		return nil, apperrors.Storage("create user", err)
	}

	logger.WithUser(user.ID).Info("User created")
	return user, nil
}

// UpdateUser replaces all fields, id preserved. A non-empty password is
// re-hashed; an empty one keeps the stored hash, so plaintext can never land
// in the store through this path.
func (s *UserService) UpdateUser(id uint, updated *models.User) (*models.User, error) {
	var existing models.User
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Storage("get user", err)
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if updated.Password == "" {
		updated.Password = existing.Password
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte(updated.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Storage("hash password", err)
		}
		updated.Password = string(hashed)
	}

	roles := updated.Roles
	updated.Roles = nil
	if err := s.db.Save(updated).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateUserConflict(updated)
		}
		return nil, apperrors.Storage("update user", err)
	}
	if roles != nil {
		if err := s.db.Model(updated).Association("Roles").Replace(roles); err != nil {
			return nil, apperrors.Storage("update user roles", err)
		}
		updated.Roles = roles
	}
	return updated, nil
}

// duplicateUserConflict names the unique column a failed write collided on:
// both email and username carry unique indexes, so the duplicated-key error
// alone does not say which one.
func (s *UserService) duplicateUserConflict(user *models.User) error {
	existing, err := s.GetUserByEmail(user.Email)
	if err == nil && existing != nil && existing.ID != user.ID {
		return apperrors.Conflict("email already exists")
	}
	return apperrors.Conflict("username already exists")
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Storage("get user", err)
	}
	return &user, nil
}

// GetUserByUsername returns nil without error when no user matches, so the
// authentication gateway can distinguish a miss from a storage failure.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("get user by username", err)
	}
	return &user, nil
}

// GetUserByEmail returns nil without error when no user matches.
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("get user by email", err)
	}
	return &user, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Roles").Find(&users).Error; err != nil {
		return nil, apperrors.Storage("list users", err)
	}
	return users, nil
}

func (s *UserService) DeleteUser(id uint) error {
	if err := s.db.Select("Roles").Delete(&models.User{ID: id}).Error; err != nil {
		return apperrors.Storage("delete user", err)
	}
	return nil
}

func (s *UserService) CreateRole(role *models.Role) (*models.Role, error) {
	var existing models.Role
	err := s.db.Where("name = ?", role.Name).First(&existing).Error
	if err == nil {
		return nil, apperrors.Conflict("role already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Storage("get role by name", err)
	}

	role.ID = 0
	if err := s.db.Create(role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("role already exists")
		}
		return nil, apperrors.Storage("create role", err)
	}
	return role, nil
}

func (s *UserService) GetRoleByID(id uint) (*models.Role, error) {
	var role models.Role
	if err := s.db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("role")
		}
		return nil, apperrors.Storage("get role", err)
	}
	return &role, nil
}

func (s *UserService) GetRoleByName(name models.RoleName) (*models.Role, error) {
	var role models.Role
	if err := s.db.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("role")
		}
		return nil, apperrors.Storage("get role by name", err)
	}
	return &role, nil
}

func (s *UserService) GetAllRoles() ([]models.Role, error) {
	var roles []models.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, apperrors.Storage("list roles", err)
	}
	return roles, nil
}

func (s *UserService) DeleteRole(id uint) error {
	if err := s.db.Delete(&models.Role{}, id).Error; err != nil {
		return apperrors.Storage("delete role", err)
	}
	return nil
}

// EnsureSeedRoles creates any missing role rows. cmd/server runs it before
// serving so a missing default role fails fast at startup instead of
// surfacing per request.
func (s *UserService) EnsureSeedRoles(names ...models.RoleName) error {
	for _, name := range names {
		_, err := s.GetRoleByName(name)
		if err == nil {
			continue
		}
		var notFound *apperrors.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		if _, err := s.CreateRole(&models.Role{Name: name}); err != nil {
			var conflict *apperrors.ConflictError
			if errors.As(err, &conflict) {
				continue
			}
			return err
		}
		logger.Info("Seed role created", map[string]interface{}{"role": string(name)})
	}
	return nil
}
