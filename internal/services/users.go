package services

import (
	"context"
	"errors"
	"strings"

	"github.com/promptvault-dev/promptvault/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers registration, login, profile updates and the admin
// surfaces (user CRUD, teams, instance settings).
type UserService struct {
	db *gorm.DB
}

func NewUserService(database *gorm.DB) *UserService {
	return &UserService{db: database}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The first user ever becomes ADMIN; later
// signups are gated by the allow-registration setting.
func (s *UserService) Register(ctx context.Context, email, password, name string) (models.User, error) {
	email = normalizeEmail(email)

	if email == "" || len(password) < 8 {
		return models.User{}, ErrInvalidInput
	}

	var existing models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return models.User{}, ErrEmailInUse
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	var userCount int64

	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return models.User{}, err
	}

	if userCount > 0 {
		settings, err := s.GetSettings(ctx)
		if err != nil {
			return models.User{}, err
		}

		if !settings.AllowRegistration {
			return models.User{}, ErrRegistrationDisabled
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	role := models.RoleUser
	if userCount == 0 {
		role = models.RoleAdmin
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         name,
		Role:         role,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies credentials. Unknown email and wrong password are the same
// error so the response does not reveal which one failed.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrInvalidCredentials
	}

	if err != nil {
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

type ProfileUpdate struct {
	Name     *string
	TeamID   *uint
	SetTeam  bool
	Password *string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdate) (models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	updates := make(map[string]interface{})

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		updates["name"] = strings.TrimSpace(*input.Name)
	}

	if input.SetTeam {
		if input.TeamID != nil {
			var team models.Team
			if err := s.db.WithContext(ctx).First(&team, *input.TeamID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.User{}, ErrNotFound
				}
				return models.User{}, err
			}
		}
		updates["team_id"] = input.TeamID
	}

	if input.Password != nil {
		if len(*input.Password) < 8 {
			return models.User{}, ErrInvalidInput
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}

		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID uint) (models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	return user, nil
}

// Admin surface.

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	err := s.db.WithContext(ctx).Order("email ASC").Find(&users).Error

	return users, err
}

type AdminUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	TeamID   *uint
}

func (s *UserService) CreateUser(ctx context.Context, input AdminUserInput) (models.User, error) {
	email := normalizeEmail(input.Email)

	if email == "" || input.Password == "" {
		return models.User{}, ErrInvalidInput
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return models.User{}, ErrInvalidInput
	}

	var existing models.User

	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return models.User{}, ErrEmailInUse
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         input.Name,
		Role:         role,
		TeamID:       input.TeamID,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

type AdminUserUpdate struct {
	Email    *string
	Password *string
	Name     *string
	Role     *string
	TeamID   *uint
	SetTeam  bool
}

func (s *UserService) UpdateUser(ctx context.Context, userID uint, input AdminUserUpdate) (models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}

	updates := make(map[string]interface{})

	if input.Email != nil {
		email := normalizeEmail(*input.Email)

		if email == "" {
			return models.User{}, ErrInvalidInput
		}

		if email != user.Email {
			var existing models.User

			err := s.db.WithContext(ctx).Where("email = ? AND id != ?", email, user.ID).First(&existing).Error

			if err == nil {
				return models.User{}, ErrEmailInUse
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, err
			}
		}

		updates["email"] = email
	}

	if input.Name != nil {
		updates["name"] = *input.Name
	}

	if input.Role != nil {
		if *input.Role != models.RoleAdmin && *input.Role != models.RoleUser {
			return models.User{}, ErrInvalidInput
		}
		updates["role"] = *input.Role
	}

	if input.SetTeam {
		updates["team_id"] = input.TeamID
	}

	if input.Password != nil && *input.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}

		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
			return models.User{}, err
		}
	}

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser removes a user and everything they own: prompts with their
// versions, tag links, ratings and search rows, plus ratings the user left on
// any prompt. One transaction, no orphaned owner references.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var promptIDs []uint

		err := tx.Model(&models.Prompt{}).Where("user_id = ?", userID).Pluck("id", &promptIDs).Error
		if err != nil {
			return err
		}

		if len(promptIDs) > 0 {
			if err := tx.Where("prompt_id IN ?", promptIDs).Delete(&models.PromptTag{}).Error; err != nil {
				return err
			}

			if err := tx.Unscoped().Where("prompt_id IN ?", promptIDs).Delete(&models.PromptVersion{}).Error; err != nil {
				return err
			}

			if err := tx.Unscoped().Where("prompt_id IN ?", promptIDs).Delete(&models.Rating{}).Error; err != nil {
				return err
			}

			tx.Exec("DELETE FROM prompt_search WHERE pid IN ?", promptIDs)

			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Prompt{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Rating{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
}

// Settings singleton, lazily created with registration allowed.

func (s *UserService) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings

	err := s.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{ID: models.SettingsID, AllowRegistration: true}

		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return models.Settings{}, err
		}

		return settings, nil
	}

	if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, allowRegistration bool) (models.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&settings).
		Update("allow_registration", allowRegistration).Error

	if err != nil {
		return models.Settings{}, err
	}

	settings.AllowRegistration = allowRegistration

	return settings, nil
}

// Teams.

func (s *UserService) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team

	err := s.db.WithContext(ctx).Order("name ASC").Find(&teams).Error

	return teams, err
}

func (s *UserService) CreateTeam(ctx context.Context, name string) (models.Team, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return models.Team{}, ErrInvalidInput
	}

	var existing models.Team

	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error

	if err == nil {
		return models.Team{}, ErrTeamNameTaken
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Team{}, err
	}

	team := models.Team{Name: name}

	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		return models.Team{}, err
	}

	return team, nil
}

// DeleteTeam clears the membership of every user on the team before removing
// the team row. That ordering is an invariant: a user must never point at a
// team that no longer exists.
func (s *UserService) DeleteTeam(ctx context.Context, teamID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team models.Team

		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		err := tx.Model(&models.User{}).
			Where("team_id = ?", teamID).
			Update("team_id", nil).Error

		if err != nil {
			return err
		}

		return tx.Unscoped().Delete(&team).Error
	})
}
