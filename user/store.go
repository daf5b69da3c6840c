package user

import (
	"slices"
	"time"

	"github.com/amonks/workshop/internal/ids"
	"github.com/amonks/workshop/internal/reactive"
	internalstrings "github.com/amonks/workshop/internal/strings"
)

// Store holds the session user, the user directory and preferences.
// It is not safe for concurrent use.
type Store struct {
	source reactive.Source
	ids    *ids.Generator

	current     *User
	users       []User
	preferences Preferences
}

// Options configures a new store.
type Options struct {
	Seed Seed

	// Preferences are the initial preferences. An unknown theme becomes
	// ThemeLight; use DefaultPreferences for the usual defaults.
	Preferences Preferences

	// Now is the clock used for IDs. Defaults to time.Now.
	Now func() time.Time

	// IDs generates directory IDs. Defaults to a generator reading Now.
	IDs *ids.Generator
}

// NewStore creates a store.
func NewStore(opts Options) *Store {
	gen := opts.IDs
	if gen == nil {
		gen = ids.NewGenerator(opts.Now)
	}
	prefs := opts.Preferences
	if !prefs.Theme.IsValid() {
		prefs.Theme = ThemeLight
	}

	s := &Store{ids: gen, preferences: prefs}
	if opts.Seed.CurrentUser != nil {
		current := *opts.Seed.CurrentUser
		s.current = &current
	}
	seen := make(map[int64]bool, len(opts.Seed.Users))
	for _, u := range opts.Seed.Users {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		gen.Reserve(u.ID)
		s.users = append(s.users, u)
	}
	return s
}

// Subscribe registers a listener for mutations and returns a function that
// removes it.
func (s *Store) Subscribe(fn reactive.Listener) func() {
	return s.source.Subscribe(fn)
}

// Version increases by one with every mutation.
func (s *Store) Version() uint64 {
	return s.source.Version()
}

// CurrentUser returns a copy of the logged-in user.
func (s *Store) CurrentUser() (User, bool) {
	if s.current == nil {
		return User{}, false
	}
	return *s.current, true
}

// IsLoggedIn reports whether a user is logged in.
func (s *Store) IsLoggedIn() bool {
	return s.current != nil
}

// Users returns the directory in insertion order.
func (s *Store) Users() []User {
	return slices.Clone(s.users)
}

// UserCount returns the size of the directory.
func (s *Store) UserCount() int {
	return len(s.users)
}

// Preferences returns the current preferences.
func (s *Store) Preferences() Preferences {
	return s.preferences
}

// Login replaces the current user with a copy of u.
func (s *Store) Login(u User) {
	s.current = &u
	s.source.Changed("login")
}

// Logout clears the current user.
func (s *Store) Logout() {
	if s.current == nil {
		return
	}
	s.current = nil
	s.source.Changed("logout")
}

// UpdateProfile merges the set fields into the current user.
// It reports false and changes nothing when no user is logged in.
func (s *Store) UpdateProfile(update ProfileUpdate) bool {
	if s.current == nil {
		return false
	}
	if update.ID != nil {
		s.current.ID = *update.ID
	}
	if update.Name != nil {
		s.current.Name = *update.Name
	}
	if update.Email != nil {
		s.current.Email = *update.Email
	}
	if update.Avatar != nil {
		s.current.Avatar = *update.Avatar
	}
	s.source.Changed("updateProfile")
	return true
}

// UpdatePreferences merges the set fields into the preferences.
// Unknown themes are ignored.
func (s *Store) UpdatePreferences(update PreferencesUpdate) Preferences {
	if update.Theme != nil {
		theme := Theme(internalstrings.NormalizeLowerTrimSpace(string(*update.Theme)))
		if theme.IsValid() {
			s.preferences.Theme = theme
		}
	}
	if update.Notifications != nil {
		s.preferences.Notifications = *update.Notifications
	}
	if update.AutoSave != nil {
		s.preferences.AutoSave = *update.AutoSave
	}
	s.source.Changed("updatePreferences")
	return s.preferences
}

// AddUser appends a user to the directory with a fresh ID.
func (s *Store) AddUser(u NewUser) User {
	created := User{
		ID:     s.ids.Next(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
	s.users = append(s.users, created)
	s.source.Changed("addUser")
	return created
}
