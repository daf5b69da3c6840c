package user

// Seed is the initial state of a store.
type Seed struct {
	CurrentUser *User
	Users       []User
}

// DefaultSeed returns the workshop participant and the sample directory.
func DefaultSeed() Seed {
	return Seed{
		CurrentUser: &User{
			ID:     1,
			Name:   "Workshop Participant",
			Email:  "participant@workshop.com",
			Avatar: "/placeholder-avatar.png",
		},
		Users: []User{
			{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"},
			{ID: 2, Name: "Bob Smith", Email: "bob@example.com"},
			{ID: 3, Name: "Carol Davis", Email: "carol@example.com"},
		},
	}
}
