package service

import (
	"context"
	"errors"
	"time"

	"rolodex/internal/imaging"
	"rolodex/internal/models"
	"rolodex/internal/observability"
	"rolodex/internal/repository"
	"rolodex/internal/validation"
)

// ContactsPerPage is the fixed page size for contact listings.
const ContactsPerPage = 50

// ContactService handles the address-book operations for authenticated
// users. Every operation is scoped to the acting user; contacts owned by
// other users are indistinguishable from missing ones.
type ContactService struct {
	contactRepo repository.ContactRepository
	images      *imaging.Store
	now         func() time.Time
}

// NewContactService returns a new ContactService.
func NewContactService(contactRepo repository.ContactRepository, images *imaging.Store) *ContactService {
	return &ContactService{contactRepo: contactRepo, images: images, now: time.Now}
}

// ContactInput carries a contact form submission. Photo holds raw uploaded
// bytes, or nil when no photo was submitted.
type ContactInput struct {
	FirstName              string
	LastName               string
	Phone                  string
	AlternatePhone         string
	Email                  string
	AlternateEmail         string
	ContactType            models.ContactType
	PreferredCommunication models.CommunicationMethod
	DateOfBirth            *time.Time
	Gender                 string
	Nickname               string
	JobTitle               string
	Company                string
	Website                string
	Address                string
	City                   string
	State                  string
	Country                string
	PostalCode             string
	LinkedInUsername       string
	TwitterUsername        string
	FacebookUsername       string
	InstagramUsername      string
	Notes                  string
	IsFavorite             bool
	Photo                  []byte
	PhotoFilename          string
}

// ContactPage is one page of a contact listing.
type ContactPage struct {
	Contacts   []models.Contact `json:"contacts"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// CreateContact validates the submission in full and stores the contact
// under the acting user. The acting user becomes owner, creator and last
// modifier.
func (s *ContactService) CreateContact(ctx context.Context, userID uint, in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{UserID: userID}
	applyInput(contact, in)
	contact.CreatedByID = &userID
	contact.UpdatedByID = &userID

	errs := validation.CheckContact(contact, in.PhotoFilename, s.now())
	if errs.Any() {
		observability.ValidationFailures.WithLabelValues("contact").Inc()
		return nil, models.NewFieldValidationError(errs)
	}

	if len(in.Photo) > 0 {
		rel, err := s.savePhoto(contact, in.Photo)
		if err != nil {
			return nil, err
		}
		contact.PhotoPath = rel
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	observability.ContactOperations.WithLabelValues("create").Inc()
	return contact, nil
}

// GetContact returns one of the user's contacts.
func (s *ContactService) GetContact(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	return s.contactRepo.GetByID(ctx, userID, contactID)
}

// UpdateContact replaces a contact's fields with the submitted form. The
// ownership check runs before validation, so a contact owned by someone
// else yields not-found rather than a validation response. Ownership and
// creator are never reassigned; the acting user becomes the last modifier.
func (s *ContactService) UpdateContact(ctx context.Context, userID, contactID uint, in ContactInput) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	applyInput(contact, in)
	contact.UpdatedByID = &userID

	errs := validation.CheckContact(contact, in.PhotoFilename, s.now())
	if errs.Any() {
		observability.ValidationFailures.WithLabelValues("contact").Inc()
		return nil, models.NewFieldValidationError(errs)
	}

	if len(in.Photo) > 0 {
		rel, err := s.savePhoto(contact, in.Photo)
		if err != nil {
			return nil, err
		}
		contact.PhotoPath = rel
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	observability.ContactOperations.WithLabelValues("update").Inc()
	return contact, nil
}

// DeleteContact removes one of the user's contacts.
func (s *ContactService) DeleteContact(ctx context.Context, userID, contactID uint) error {
	if err := s.contactRepo.Delete(ctx, userID, contactID); err != nil {
		return err
	}
	observability.ContactOperations.WithLabelValues("delete").Inc()
	return nil
}

// ListContacts returns one page of the user's contacts, newest first.
func (s *ContactService) ListContacts(ctx context.Context, userID uint, filter repository.ContactFilter, page int) (*ContactPage, error) {
	limit, offset, page := paginate(page)
	contacts, total, err := s.contactRepo.List(ctx, userID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return newContactPage(contacts, total, page), nil
}

// SearchContacts returns one page of the user's contacts matching the query
// against name, email and phone fields.
func (s *ContactService) SearchContacts(ctx context.Context, userID uint, query string, page int) (*ContactPage, error) {
	limit, offset, page := paginate(page)
	contacts, total, err := s.contactRepo.Search(ctx, userID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return newContactPage(contacts, total, page), nil
}

// ExportContacts returns every contact of the user matching the filter,
// newest first, walking the listing page by page.
func (s *ContactService) ExportContacts(ctx context.Context, userID uint, filter repository.ContactFilter) ([]models.Contact, error) {
	var all []models.Contact
	for offset := 0; ; offset += ContactsPerPage {
		contacts, _, err := s.contactRepo.List(ctx, userID, filter, ContactsPerPage, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, contacts...)
		if len(contacts) < ContactsPerPage {
			break
		}
	}
	observability.ContactOperations.WithLabelValues("export").Inc()
	return all, nil
}

// FacetValues lists the distinct values of one facet (cities, states,
// countries, contact_types, communication_methods) across the user's
// contacts.
func (s *ContactService) FacetValues(ctx context.Context, userID uint, facet string) ([]string, error) {
	return s.contactRepo.FacetValues(ctx, userID, facet)
}

func (s *ContactService) savePhoto(contact *models.Contact, raw []byte) (string, error) {
	rel, err := s.images.SavePhoto(contact.FirstName, contact.LastName, contact.Phone, raw)
	if err != nil {
		if errors.Is(err, imaging.ErrUndecodable) {
			observability.ImageDecodeFailures.WithLabelValues("photo").Inc()
			return "", models.NewValidationError("Uploaded image could not be decoded")
		}
		return "", models.NewInternalError(err)
	}
	observability.ImagesNormalized.WithLabelValues("photo").Inc()
	return rel, nil
}

func applyInput(contact *models.Contact, in ContactInput) {
	contact.FirstName = in.FirstName
	contact.LastName = in.LastName
	contact.Phone = in.Phone
	contact.AlternatePhone = in.AlternatePhone
	contact.Email = in.Email
	contact.AlternateEmail = in.AlternateEmail
	contact.ContactType = in.ContactType
	contact.PreferredCommunication = in.PreferredCommunication
	contact.DateOfBirth = in.DateOfBirth
	contact.Gender = in.Gender
	contact.Nickname = in.Nickname
	contact.JobTitle = in.JobTitle
	contact.Company = in.Company
	contact.Website = in.Website
	contact.Address = in.Address
	contact.City = in.City
	contact.State = in.State
	contact.Country = in.Country
	contact.PostalCode = in.PostalCode
	contact.LinkedInUsername = in.LinkedInUsername
	contact.TwitterUsername = in.TwitterUsername
	contact.FacebookUsername = in.FacebookUsername
	contact.InstagramUsername = in.InstagramUsername
	contact.Notes = in.Notes
	contact.IsFavorite = in.IsFavorite
}

func paginate(page int) (limit, offset, normalized int) {
	if page < 1 {
		page = 1
	}
	return ContactsPerPage, (page - 1) * ContactsPerPage, page
}

func newContactPage(contacts []models.Contact, total int64, page int) *ContactPage {
	totalPages := int((total + ContactsPerPage - 1) / ContactsPerPage)
	return &ContactPage{
		Contacts:   contacts,
		Total:      total,
		Page:       page,
		PerPage:    ContactsPerPage,
		TotalPages: totalPages,
	}
}
