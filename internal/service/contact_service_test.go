package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"rolodex/internal/imaging"
	"rolodex/internal/models"
	"rolodex/internal/repository"
	"rolodex/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactRepoStub struct {
	createFn      func(context.Context, *models.Contact) error
	getByIDFn     func(context.Context, uint, uint) (*models.Contact, error)
	updateFn      func(context.Context, *models.Contact) error
	deleteFn      func(context.Context, uint, uint) error
	listFn        func(context.Context, uint, repository.ContactFilter, int, int) ([]models.Contact, int64, error)
	searchFn      func(context.Context, uint, string, int, int) ([]models.Contact, int64, error)
	facetValuesFn func(context.Context, uint, string) ([]string, error)
}

func (s *contactRepoStub) Create(ctx context.Context, ct *models.Contact) error {
	return s.createFn(ctx, ct)
}
func (s *contactRepoStub) GetByID(ctx context.Context, userID, contactID uint) (*models.Contact, error) {
	return s.getByIDFn(ctx, userID, contactID)
}
func (s *contactRepoStub) Update(ctx context.Context, ct *models.Contact) error {
	return s.updateFn(ctx, ct)
}
func (s *contactRepoStub) Delete(ctx context.Context, userID, contactID uint) error {
	return s.deleteFn(ctx, userID, contactID)
}
func (s *contactRepoStub) List(ctx context.Context, userID uint, filter repository.ContactFilter, limit, offset int) ([]models.Contact, int64, error) {
	return s.listFn(ctx, userID, filter, limit, offset)
}
func (s *contactRepoStub) Search(ctx context.Context, userID uint, query string, limit, offset int) ([]models.Contact, int64, error) {
	return s.searchFn(ctx, userID, query, limit, offset)
}
func (s *contactRepoStub) FacetValues(ctx context.Context, userID uint, facet string) ([]string, error) {
	return s.facetValuesFn(ctx, userID, facet)
}

func newContactService(t *testing.T, repo *contactRepoStub) *ContactService {
	t.Helper()
	return NewContactService(repo, imaging.NewStore(t.TempDir()))
}

func validContactInput() ContactInput {
	return ContactInput{
		FirstName:  "Mary",
		LastName:   "Watson",
		Phone:      "1234567890",
		Gender:     "Female",
		Address:    "1 Main St",
		City:       "Austin",
		State:      "Texas",
		Country:    "USA",
		PostalCode: "78701",
	}
}

func TestContactService_CreateContact(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		var created *models.Contact
		svc := newContactService(t, &contactRepoStub{
			createFn: func(_ context.Context, ct *models.Contact) error {
				ct.ID = 7
				created = ct
				return nil
			},
		})

		got, err := svc.CreateContact(context.Background(), 3, validContactInput())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, uint(3), got.UserID)
		require.NotNil(t, got.CreatedByID)
		require.NotNil(t, got.UpdatedByID)
		assert.Equal(t, uint(3), *got.CreatedByID)
		assert.Equal(t, uint(3), *got.UpdatedByID)
	})

	t.Run("Accumulates every field failure", func(t *testing.T) {
		svc := newContactService(t, &contactRepoStub{
			createFn: func(context.Context, *models.Contact) error {
				t.Fatal("create must not be called for invalid input")
				return nil
			},
		})

		in := ContactInput{
			FirstName:     "Mary99",
			Phone:         "12",
			Email:         "not-an-email",
			Gender:        "Unknown",
			PostalCode:    "AB123",
			PhotoFilename: "photo.gif",
		}

		_, err := svc.CreateContact(context.Background(), 3, in)
		fields := fieldsOf(t, err)

		for _, key := range []string{
			"first_name", "last_name", "contact", "email", "gender",
			"address", "city", "state", "country", "postal_code", "contact_photo",
		} {
			assert.Contains(t, fields, key, "expected a failure for %s", key)
		}
	})

	t.Run("With photo", func(t *testing.T) {
		svc := newContactService(t, &contactRepoStub{
			createFn: func(context.Context, *models.Contact) error { return nil },
		})

		in := validContactInput()
		in.Photo = testutil.TinyPNG(t, 80, 60)
		in.PhotoFilename = "mary.png"

		got, err := svc.CreateContact(context.Background(), 3, in)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got.PhotoPath, "contact_photos/mary_watson_1234567890_"))
		assert.True(t, strings.HasSuffix(got.PhotoPath, ".jpg"))
	})

	t.Run("Undecodable photo", func(t *testing.T) {
		svc := newContactService(t, &contactRepoStub{
			createFn: func(context.Context, *models.Contact) error {
				t.Fatal("create must not be called when the photo cannot be decoded")
				return nil
			},
		})

		in := validContactInput()
		in.Photo = []byte("not an image")
		in.PhotoFilename = "mary.jpg"

		_, err := svc.CreateContact(context.Background(), 3, in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestContactService_UpdateContact(t *testing.T) {
	t.Parallel()

	t.Run("Ownership is checked before validation", func(t *testing.T) {
		svc := newContactService(t, &contactRepoStub{
			getByIDFn: func(context.Context, uint, uint) (*models.Contact, error) {
				return nil, models.NewNotFoundError("Contact", 42)
			},
			updateFn: func(context.Context, *models.Contact) error {
				t.Fatal("update must not be called for another user's contact")
				return nil
			},
		})

		// Input is invalid on several fields, but the not-found must win.
		_, err := svc.UpdateContact(context.Background(), 3, 42, ContactInput{FirstName: "Mary99"})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Empty(t, appErr.Fields)
	})

	t.Run("Owner and creator survive the update", func(t *testing.T) {
		creator := uint(3)
		stored := &models.Contact{
			UserID: 3, FirstName: "Mary", LastName: "Watson", Phone: "1234567890",
			Gender: "Female", Address: "1 Main St", City: "Austin", State: "Texas",
			Country: "USA", PostalCode: "78701",
			CreatedByID: &creator, UpdatedByID: &creator,
		}
		stored.ID = 42

		var updated *models.Contact
		svc := newContactService(t, &contactRepoStub{
			getByIDFn: func(context.Context, uint, uint) (*models.Contact, error) { return stored, nil },
			updateFn: func(_ context.Context, ct *models.Contact) error {
				updated = ct
				return nil
			},
		})

		in := validContactInput()
		in.City = "Dallas"
		got, err := svc.UpdateContact(context.Background(), 3, 42, in)
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "Dallas", got.City)
		assert.Equal(t, uint(3), got.UserID)
		require.NotNil(t, got.CreatedByID)
		assert.Equal(t, creator, *got.CreatedByID)
	})

	t.Run("Validation failures accumulate", func(t *testing.T) {
		stored := &models.Contact{UserID: 3}
		stored.ID = 42
		svc := newContactService(t, &contactRepoStub{
			getByIDFn: func(context.Context, uint, uint) (*models.Contact, error) { return stored, nil },
			updateFn: func(context.Context, *models.Contact) error {
				t.Fatal("update must not be called for invalid input")
				return nil
			},
		})

		in := validContactInput()
		in.FirstName = "Mary99"
		in.PostalCode = "AB"

		_, err := svc.UpdateContact(context.Background(), 3, 42, in)
		fields := fieldsOf(t, err)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "postal_code")
	})
}

func TestContactService_DeleteContact(t *testing.T) {
	t.Parallel()

	deleted := false
	svc := newContactService(t, &contactRepoStub{
		deleteFn: func(_ context.Context, userID, contactID uint) error {
			deleted = true
			assert.Equal(t, uint(3), userID)
			assert.Equal(t, uint(42), contactID)
			return nil
		},
	})

	require.NoError(t, svc.DeleteContact(context.Background(), 3, 42))
	assert.True(t, deleted)
}

func TestContactService_ListContacts(t *testing.T) {
	t.Parallel()

	t.Run("Pagination math", func(t *testing.T) {
		var gotLimit, gotOffset int
		svc := newContactService(t, &contactRepoStub{
			listFn: func(_ context.Context, _ uint, _ repository.ContactFilter, limit, offset int) ([]models.Contact, int64, error) {
				gotLimit, gotOffset = limit, offset
				return make([]models.Contact, 50), 120, nil
			},
		})

		page, err := svc.ListContacts(context.Background(), 3, repository.ContactFilter{}, 2)
		require.NoError(t, err)
		assert.Equal(t, ContactsPerPage, gotLimit)
		assert.Equal(t, ContactsPerPage, gotOffset)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, ContactsPerPage, page.PerPage)
		assert.EqualValues(t, 120, page.Total)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("Page below one is clamped", func(t *testing.T) {
		var gotOffset int
		svc := newContactService(t, &contactRepoStub{
			listFn: func(_ context.Context, _ uint, _ repository.ContactFilter, _, offset int) ([]models.Contact, int64, error) {
				gotOffset = offset
				return nil, 0, nil
			},
		})

		page, err := svc.ListContacts(context.Background(), 3, repository.ContactFilter{}, 0)
		require.NoError(t, err)
		assert.Zero(t, gotOffset)
		assert.Equal(t, 1, page.Page)
		assert.Zero(t, page.TotalPages)
	})

	t.Run("Filter is passed through", func(t *testing.T) {
		var gotFilter repository.ContactFilter
		svc := newContactService(t, &contactRepoStub{
			listFn: func(_ context.Context, _ uint, filter repository.ContactFilter, _, _ int) ([]models.Contact, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		})

		filter := repository.ContactFilter{City: "Austin", FavoritesOnly: true}
		_, err := svc.ListContacts(context.Background(), 3, filter, 1)
		require.NoError(t, err)
		assert.Equal(t, filter, gotFilter)
	})
}

func TestContactService_SearchContacts(t *testing.T) {
	t.Parallel()

	var gotQuery string
	svc := newContactService(t, &contactRepoStub{
		searchFn: func(_ context.Context, _ uint, query string, limit, offset int) ([]models.Contact, int64, error) {
			gotQuery = query
			assert.Equal(t, ContactsPerPage, limit)
			assert.Zero(t, offset)
			return []models.Contact{{FirstName: "Mary"}}, 1, nil
		},
	})

	page, err := svc.SearchContacts(context.Background(), 3, "mary", 1)
	require.NoError(t, err)
	assert.Equal(t, "mary", gotQuery)
	require.Len(t, page.Contacts, 1)
	assert.Equal(t, 1, page.TotalPages)
}

func TestContactService_FacetValues(t *testing.T) {
	t.Parallel()

	svc := newContactService(t, &contactRepoStub{
		facetValuesFn: func(_ context.Context, userID uint, facet string) ([]string, error) {
			assert.Equal(t, uint(3), userID)
			assert.Equal(t, "cities", facet)
			return []string{"Austin", "Houston"}, nil
		},
	})

	values, err := svc.FacetValues(context.Background(), 3, "cities")
	require.NoError(t, err)
	assert.Equal(t, []string{"Austin", "Houston"}, values)
}

func TestContactService_DateOfBirthValidation(t *testing.T) {
	t.Parallel()

	svc := newContactService(t, &contactRepoStub{
		createFn: func(context.Context, *models.Contact) error {
			t.Fatal("create must not be called for a future date of birth")
			return nil
		},
	})
	svc.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }

	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	in := validContactInput()
	in.DateOfBirth = &future

	_, err := svc.CreateContact(context.Background(), 3, in)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "date_of_birth")
}
