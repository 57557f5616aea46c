package users

// Directory is the set of identities that may sign in.
type Directory interface {
	// GetByEmail finds an entry by email, ignoring letter case.
	GetByEmail(email string) (*Entry, error)
	List() []Identity
}
