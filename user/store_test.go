package user

import (
	"testing"
	"time"

	"github.com/amonks/workshop/internal/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return NewStore(Options{
		Seed:        DefaultSeed(),
		Preferences: DefaultPreferences(),
		Now:         func() time.Time { return now },
	})
}

func TestStore_LoginLogoutScenario(t *testing.T) {
	store := newTestStore(t)

	store.Login(User{ID: 9, Name: "X", Email: "x@x"})
	require.True(t, store.IsLoggedIn())
	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, int64(9), current.ID)

	store.Logout()
	assert.False(t, store.IsLoggedIn())

	name := "Y"
	version := store.Version()
	assert.False(t, store.UpdateProfile(ProfileUpdate{Name: &name}))
	assert.Equal(t, version, store.Version())
	_, ok = store.CurrentUser()
	assert.False(t, ok)
}

func TestStore_SeededState(t *testing.T) {
	store := newTestStore(t)

	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, 3, store.UserCount())
	assert.Equal(t, DefaultPreferences(), store.Preferences())

	current, _ := store.CurrentUser()
	assert.Equal(t, "Workshop Participant", current.Name)
	assert.Equal(t, "/placeholder-avatar.png", current.Avatar)
}

func TestStore_UpdateProfileIsDetachedFromDirectory(t *testing.T) {
	store := newTestStore(t)

	name := "Renamed"
	email := "renamed@example.com"
	require.True(t, store.UpdateProfile(ProfileUpdate{Name: &name, Email: &email}))

	current, _ := store.CurrentUser()
	assert.Equal(t, "Renamed", current.Name)
	assert.Equal(t, "renamed@example.com", current.Email)
	assert.Equal(t, "/placeholder-avatar.png", current.Avatar)
	assert.Equal(t, "Alice Johnson", store.Users()[0].Name, "directory entry with the same id must not change")
}

func TestStore_LoginStoresCopy(t *testing.T) {
	store := newTestStore(t)
	u := User{ID: 4, Name: "Dana", Email: "dana@example.com"}
	store.Login(u)

	u.Name = "changed after login"
	current, _ := store.CurrentUser()
	assert.Equal(t, "Dana", current.Name)

	current.Name = "changed copy"
	again, _ := store.CurrentUser()
	assert.Equal(t, "Dana", again.Name)
}

func TestStore_UpdatePreferences(t *testing.T) {
	store := newTestStore(t)

	dark := ThemeDark
	off := false
	prefs := store.UpdatePreferences(PreferencesUpdate{Theme: &dark, Notifications: &off})
	assert.Equal(t, Preferences{Theme: ThemeDark, Notifications: false, AutoSave: true}, prefs)

	bogus := Theme("sepia")
	prefs = store.UpdatePreferences(PreferencesUpdate{Theme: &bogus, AutoSave: &off})
	assert.Equal(t, Preferences{Theme: ThemeDark, Notifications: false, AutoSave: false}, prefs)
	assert.Equal(t, prefs, store.Preferences())
}

func TestStore_AddUser(t *testing.T) {
	store := newTestStore(t)

	first := store.AddUser(NewUser{Name: "Dana", Email: "dana@example.com"})
	second := store.AddUser(NewUser{Name: "Eve", Email: "eve@example.com"})

	assert.Equal(t, 5, store.UserCount())
	assert.NotEqual(t, first.ID, second.ID)
	for _, seeded := range DefaultSeed().Users {
		assert.NotEqual(t, seeded.ID, first.ID)
		assert.NotEqual(t, seeded.ID, second.ID)
	}
	assert.Equal(t, second, store.Users()[4])
}

func TestStore_NotifiesListeners(t *testing.T) {
	store := newTestStore(t)
	var actions []string
	store.Subscribe(func(change reactive.Change) {
		actions = append(actions, change.Action)
	})

	store.Logout()
	store.Logout()
	store.Login(User{ID: 2})
	store.AddUser(NewUser{Name: "Frank"})

	assert.Equal(t, []string{"logout", "login", "addUser"}, actions)
}

func TestNewStore_DefaultsInvalidTheme(t *testing.T) {
	store := NewStore(Options{})
	assert.Equal(t, ThemeLight, store.Preferences().Theme)
	assert.False(t, store.IsLoggedIn())
	assert.Zero(t, store.UserCount())
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	_, err = ParseTheme("neon")
	require.ErrorIs(t, err, ErrInvalidTheme)
	assert.EqualError(t, err, `invalid theme: "neon" (valid: light, dark)`)

	_, err = ParseTheme("")
	require.ErrorIs(t, err, ErrInvalidTheme)
}

func TestNewStore_DropsDuplicateSeedIDs(t *testing.T) {
	store := NewStore(Options{
		Seed: Seed{Users: []User{
			{ID: 7, Name: "First", Email: "first@example.com"},
			{ID: 7, Name: "Second", Email: "second@example.com"},
			{ID: 8, Name: "Third", Email: "third@example.com"},
		}},
		Now: func() time.Time { return time.UnixMilli(1) },
	})

	users := store.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "First", users[0].Name)
	assert.Equal(t, int64(8), users[1].ID)

	added := store.AddUser(NewUser{Name: "New", Email: "new@example.com"})
	assert.Greater(t, added.ID, int64(8))
}
