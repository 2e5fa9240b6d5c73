package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rolodex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.Contact{})
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func seedOwner(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "irrelevant",
		FirstName: "Owner",
		LastName:  "User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedContact(t *testing.T, db *gorm.DB, ownerID uint, first string, mutate ...func(*models.Contact)) *models.Contact {
	t.Helper()
	ct := &models.Contact{
		UserID:      ownerID,
		FirstName:   first,
		LastName:    "Doe",
		Phone:       "1234567890",
		Gender:      "Other",
		ContactType: models.ContactTypePersonal,
		Address:     "1 Main St",
		City:        "Austin",
		State:       "Texas",
		Country:     "USA",
		PostalCode:  "78701",
	}
	for _, m := range mutate {
		m(ct)
	}
	require.NoError(t, db.Create(ct).Error)
	return ct
}

func TestContactRepository_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	alice := seedOwner(t, db, "alice")
	bob := seedOwner(t, db, "bob")
	ct := seedContact(t, db, alice.ID, "Mary")

	t.Run("Owner can read", func(t *testing.T) {
		got, err := repo.GetByID(ctx, alice.ID, ct.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mary", got.FirstName)
	})

	t.Run("Other user gets not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, bob.ID, ct.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Other user cannot delete", func(t *testing.T) {
		err := repo.Delete(ctx, bob.ID, ct.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)

		// Still present for the real owner
		_, err = repo.GetByID(ctx, alice.ID, ct.ID)
		assert.NoError(t, err)
	})

	t.Run("Owner can delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, alice.ID, ct.ID))

		_, err := repo.GetByID(ctx, alice.ID, ct.ID)
		assert.Error(t, err)
	})
}

func TestContactRepository_ListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "carol")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		ct := seedContact(t, db, owner.ID, fmt.Sprintf("Person%d", i))
		// Space out created_at so ordering is deterministic.
		require.NoError(t, db.Model(ct).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	contacts, total, err := repo.List(ctx, owner.ID, ContactFilter{}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Person4", contacts[0].FirstName, "newest first")
	assert.Equal(t, "Person3", contacts[1].FirstName)

	contacts, total, err = repo.List(ctx, owner.ID, ContactFilter{}, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Person0", contacts[0].FirstName)
}

func TestContactRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "dave")
	seedContact(t, db, owner.ID, "Austinite")
	seedContact(t, db, owner.ID, "Houstonian", func(ct *models.Contact) {
		ct.City = "Houston"
		ct.ContactType = models.ContactTypeWork
		ct.PreferredCommunication = models.CommunicationEmail
		ct.IsFavorite = true
	})

	t.Run("By city", func(t *testing.T) {
		contacts, total, err := repo.List(ctx, owner.ID, ContactFilter{City: "Houston"}, 50, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Houstonian", contacts[0].FirstName)
	})

	t.Run("By contact type", func(t *testing.T) {
		contacts, _, err := repo.List(ctx, owner.ID, ContactFilter{ContactType: models.ContactTypeWork}, 50, 0)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "Houstonian", contacts[0].FirstName)
	})

	t.Run("By communication method", func(t *testing.T) {
		contacts, _, err := repo.List(ctx, owner.ID, ContactFilter{PreferredCommunication: models.CommunicationEmail}, 50, 0)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
	})

	t.Run("Favorites only", func(t *testing.T) {
		contacts, _, err := repo.List(ctx, owner.ID, ContactFilter{FavoritesOnly: true}, 50, 0)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.True(t, contacts[0].IsFavorite)
	})
}

func TestContactRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "erin")
	other := seedOwner(t, db, "frank")
	seedContact(t, db, owner.ID, "Mary", func(ct *models.Contact) {
		ct.LastName = "Watson"
		ct.Email = "mary.watson@example.com"
	})
	seedContact(t, db, owner.ID, "John", func(ct *models.Contact) {
		ct.Phone = "9876543210"
	})
	seedContact(t, db, other.ID, "Mary") // same name, different owner

	t.Run("Matches first name case-insensitively", func(t *testing.T) {
		contacts, total, err := repo.Search(ctx, owner.ID, "mArY", 50, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total, "must not see other users' contacts")
		require.Len(t, contacts, 1)
		assert.Equal(t, "Mary", contacts[0].FirstName)
	})

	t.Run("Matches email fragment", func(t *testing.T) {
		contacts, _, err := repo.Search(ctx, owner.ID, "watson@", 50, 0)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
	})

	t.Run("Matches phone fragment", func(t *testing.T) {
		contacts, _, err := repo.Search(ctx, owner.ID, "98765", 50, 0)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "John", contacts[0].FirstName)
	})

	t.Run("No match", func(t *testing.T) {
		contacts, total, err := repo.Search(ctx, owner.ID, "zzz", 50, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, contacts)
	})
}

func TestContactRepository_FacetValues(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "grace")
	other := seedOwner(t, db, "hank")
	seedContact(t, db, owner.ID, "A")
	seedContact(t, db, owner.ID, "B", func(ct *models.Contact) { ct.City = "Houston" })
	seedContact(t, db, owner.ID, "C", func(ct *models.Contact) { ct.City = "Houston" })
	seedContact(t, db, other.ID, "D", func(ct *models.Contact) { ct.City = "Denver" })

	t.Run("Distinct cities scoped to owner", func(t *testing.T) {
		cities, err := repo.FacetValues(ctx, owner.ID, "cities")
		require.NoError(t, err)
		assert.Equal(t, []string{"Austin", "Houston"}, cities)
	})

	t.Run("Contact types", func(t *testing.T) {
		types, err := repo.FacetValues(ctx, owner.ID, "contact_types")
		require.NoError(t, err)
		assert.Equal(t, []string{"personal"}, types)
	})

	t.Run("Unknown facet rejected", func(t *testing.T) {
		_, err := repo.FacetValues(ctx, owner.ID, "password")
		require.Error(t, err)
	})
}

func TestContactRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()

	owner := seedOwner(t, db, "ivan")
	ct := seedContact(t, db, owner.ID, "Before")

	ct.FirstName = "After"
	ct.City = "Dallas"
	require.NoError(t, repo.Update(ctx, ct))

	got, err := repo.GetByID(ctx, owner.ID, ct.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.FirstName)
	assert.Equal(t, "Dallas", got.City)
}
