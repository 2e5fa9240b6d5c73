package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rolodex/internal/cache"
	"rolodex/internal/models"

	"gorm.io/gorm"
)

// ContactFilter narrows a contact listing. Zero-valued fields are ignored.
type ContactFilter struct {
	City                   string
	State                  string
	Country                string
	ContactType            models.ContactType
	PreferredCommunication models.CommunicationMethod
	FavoritesOnly          bool
}

// facetColumns whitelists the columns facet listings may select over.
var facetColumns = map[string]string{
	"cities":                "city",
	"states":                "state",
	"countries":             "country",
	"contact_types":         "contact_type",
	"communication_methods": "preferred_communication",
}

// ContactRepository defines persistence operations for contacts. Every read
// and write is scoped to the owning user; a contact belonging to another
// user behaves exactly like a missing one.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, ownerID, id uint) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, ownerID, id uint) error
	List(ctx context.Context, ownerID uint, filter ContactFilter, limit, offset int) ([]models.Contact, int64, error)
	Search(ctx context.Context, ownerID uint, query string, limit, offset int) ([]models.Contact, int64, error)
	FacetValues(ctx context.Context, ownerID uint, facet string) ([]string, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a new ContactRepository implementation.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateContact(ctx, contact.UserID, contact.ID)
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, ownerID, id uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		First(&contact, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Contact", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &contact, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateContact(ctx, contact.UserID, contact.ID)
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&models.Contact{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Contact", id)
	}
	cache.InvalidateContact(ctx, ownerID, id)
	return nil
}

func (r *contactRepository) List(ctx context.Context, ownerID uint, filter ContactFilter, limit, offset int) ([]models.Contact, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Contact{}).Where("user_id = ?", ownerID)
	q = applyFilter(q, filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var contacts []models.Contact
	err := q.Session(&gorm.Session{}).Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return contacts, total, nil
}

// Search matches the query case-insensitively against name, email and phone
// fields. LOWER/LIKE keeps behavior identical across postgres and sqlite.
func (r *contactRepository) Search(ctx context.Context, ownerID uint, query string, limit, offset int) ([]models.Contact, int64, error) {
	like := "%" + strings.ToLower(query) + "%"
	q := r.db.WithContext(ctx).Model(&models.Contact{}).
		Where("user_id = ?", ownerID).
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR contact LIKE ?",
			like, like, like, like)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var contacts []models.Contact
	err := q.Session(&gorm.Session{}).Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return contacts, total, nil
}

// FacetValues returns the distinct non-empty values of one facet column for
// the owner's contacts, cached per owner.
func (r *contactRepository) FacetValues(ctx context.Context, ownerID uint, facet string) ([]string, error) {
	column, ok := facetColumns[facet]
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf("unknown facet %q", facet))
	}

	var values []string
	key := cache.ContactFacetKey(ownerID, facet)
	err := cache.Aside(ctx, key, &values, cache.ContactFacetTTL, func() error {
		return r.db.WithContext(ctx).Model(&models.Contact{}).
			Where("user_id = ?", ownerID).
			Where(column+" <> ''").
			Distinct(column).
			Order(column + " ASC").
			Pluck(column, &values).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return values, nil
}

func applyFilter(q *gorm.DB, filter ContactFilter) *gorm.DB {
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.State != "" {
		q = q.Where("state = ?", filter.State)
	}
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if filter.ContactType != "" {
		q = q.Where("contact_type = ?", filter.ContactType)
	}
	if filter.PreferredCommunication != "" {
		q = q.Where("preferred_communication = ?", filter.PreferredCommunication)
	}
	if filter.FavoritesOnly {
		q = q.Where("is_favorite = ?", true)
	}
	return q
}
