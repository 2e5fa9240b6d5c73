package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	avatarDir       = "account_profiles"
	photoDir        = "contact_photos"
	timestampLayout = "20060102150405"
)

// Store writes normalized images under a media root and derives their
// storage paths. Paths embed a timestamp component so repeated saves of the
// same identity never collide.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore creates a Store rooted at the given media directory.
func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// NewStoreWithClock creates a Store with a fixed clock for tests.
func NewStoreWithClock(root string, now func() time.Time) *Store {
	return &Store{root: root, now: now}
}

// SaveAvatar normalizes and writes a profile image, returning the relative
// storage path. email and phone are used only to derive the filename.
func (s *Store) SaveAvatar(email, phone string, raw []byte) (string, error) {
	normalized, err := NormalizeAvatar(raw)
	if err != nil {
		return "", err
	}
	rel := filepath.ToSlash(filepath.Join(avatarDir, s.avatarFilename(email, phone)))
	if err := s.write(rel, normalized); err != nil {
		return "", err
	}
	return rel, nil
}

// SavePhoto normalizes and writes a contact photo, returning the relative
// storage path. The name fields are used only to derive the filename.
func (s *Store) SavePhoto(firstName, lastName, phone string, raw []byte) (string, error) {
	normalized, err := NormalizePhoto(raw)
	if err != nil {
		return "", err
	}
	rel := filepath.ToSlash(filepath.Join(photoDir, s.photoFilename(firstName, lastName, phone)))
	if err := s.write(rel, normalized); err != nil {
		return "", err
	}
	return rel, nil
}

// Abs resolves a stored relative path against the media root.
func (s *Store) Abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Store) avatarFilename(email, phone string) string {
	sanitized := strings.NewReplacer("@", "_", ".", "_").Replace(email)
	if phone == "" {
		phone = "nocontact"
	}
	return fmt.Sprintf("%s_%s_%s.jpg", sanitized, phone, s.now().Format(timestampLayout))
}

func (s *Store) photoFilename(firstName, lastName, phone string) string {
	first := sanitizeName(firstName, "no_firstname")
	last := sanitizeName(lastName, "no_lastname")
	if phone == "" {
		phone = "nocontact"
	}
	return fmt.Sprintf("%s_%s_%s_%s.jpg", first, last, phone, s.now().Format(timestampLayout))
}

func sanitizeName(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return strings.ToLower(strings.ReplaceAll(v, " ", "_"))
}

func (s *Store) write(rel string, data []byte) error {
	path := s.Abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
