// Package service implements the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"rolodex/internal/imaging"
	"rolodex/internal/models"
	"rolodex/internal/observability"
	"rolodex/internal/repository"
	"rolodex/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account registration, authentication and profile
// management.
type UserService struct {
	userRepo repository.UserRepository
	images   *imaging.Store
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, images *imaging.Store) *UserService {
	return &UserService{userRepo: userRepo, images: images}
}

// RegisterInput carries a registration form submission. Image holds the raw
// uploaded bytes, or nil when no image was submitted.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Contact       string
	Bio           string
	Image         []byte
	ImageFilename string
}

// ProfileUpdateInput carries a full profile form submission. All text fields
// replace the stored values; Image, when present, replaces the stored
// profile image.
type ProfileUpdateInput struct {
	Username      string
	Email         string
	FirstName     string
	LastName      string
	Contact       string
	Bio           string
	Image         []byte
	ImageFilename string
}

// Register validates the submission in full, creates the account and stores
// the normalized profile image. Validation never stops at the first failure;
// the returned error carries every failing field.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Contact:   in.Contact,
		Bio:       in.Bio,
		IsActive:  true,
	}

	errs := validation.CheckAccount(user, in.ImageFilename)
	if err := validation.ValidatePassword(in.Password); err != nil {
		errs.Add("password", capitalize(err.Error()))
	}
	s.checkUniqueness(ctx, errs, user, 0)
	if errs.Any() {
		observability.ValidationFailures.WithLabelValues("account").Inc()
		return nil, models.NewFieldValidationError(errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.Password = string(hashed)

	if len(in.Image) > 0 {
		rel, err := s.saveAvatar(user, in.Image)
		if err != nil {
			return nil, err
		}
		user.ImagePath = rel
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	observability.UsersRegistered.Inc()
	return user, nil
}

// Authenticate verifies credentials and returns the account. login accepts
// either a username or an email address.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, login)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is inactive")
	}
	return user, nil
}

// GetUserByID returns the account for the given ID.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile replaces the account's profile fields with the submitted
// form and re-validates everything, including uniqueness against other
// accounts. A newly uploaded image is normalized and stored under a fresh
// timestamped path.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.Email = in.Email
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Contact = in.Contact
	user.Bio = in.Bio

	errs := validation.CheckAccount(user, in.ImageFilename)
	s.checkUniqueness(ctx, errs, user, user.ID)
	if errs.Any() {
		observability.ValidationFailures.WithLabelValues("account").Inc()
		return nil, models.NewFieldValidationError(errs)
	}

	if len(in.Image) > 0 {
		rel, err := s.saveAvatar(user, in.Image)
		if err != nil {
			return nil, err
		}
		user.ImagePath = rel
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and all its contacts after confirming
// the password.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.NewUnauthorizedError("Password confirmation failed")
	}
	return s.userRepo.Delete(ctx, userID)
}

// checkUniqueness appends an error per identity field already claimed by a
// different account. excludeID skips the account being updated.
func (s *UserService) checkUniqueness(ctx context.Context, errs validation.FieldErrors, user *models.User, excludeID uint) {
	if user.Username != "" {
		if existing, err := s.userRepo.GetByUsername(ctx, user.Username); err == nil && existing != nil && existing.ID != excludeID {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if user.Email != "" {
		if existing, err := s.userRepo.GetByEmail(ctx, user.Email); err == nil && existing != nil && existing.ID != excludeID {
			errs.Add("email", "A user with this email already exists.")
		}
	}
	if user.Contact != "" {
		if existing, err := s.userRepo.GetByContact(ctx, user.Contact); err == nil && existing != nil && existing.ID != excludeID {
			errs.Add("contact", "A user with this contact number already exists.")
		}
	}
}

func (s *UserService) saveAvatar(user *models.User, raw []byte) (string, error) {
	rel, err := s.images.SaveAvatar(user.Email, user.Contact, raw)
	if err != nil {
		if errors.Is(err, imaging.ErrUndecodable) {
			observability.ImageDecodeFailures.WithLabelValues("avatar").Inc()
			return "", models.NewValidationError("Uploaded image could not be decoded")
		}
		return "", models.NewInternalError(err)
	}
	observability.ImagesNormalized.WithLabelValues("avatar").Inc()
	return rel, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
