package personality

// Store exposes profile retrieval for the generator and HTTP handlers.
type Store interface {
	List() []Profile
	FindByID(id string) (Profile, bool)
	Default() Profile
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items     []Profile
	defaultID string
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied
// profiles. defaultID selects the profile returned by Default; when it
// matches nothing the first profile wins.
func NewMemoryStore(items []Profile, defaultID string) *MemoryStore {
	return &MemoryStore{items: append([]Profile(nil), items...), defaultID: defaultID}
}

// List returns the configured profiles.
func (s *MemoryStore) List() []Profile {
	return append([]Profile(nil), s.items...)
}

// FindByID looks up a profile by identifier.
func (s *MemoryStore) FindByID(id string) (Profile, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Profile{}, false
}

// Default returns the configured default profile.
func (s *MemoryStore) Default() Profile {
	if profile, ok := s.FindByID(s.defaultID); ok {
		return profile
	}
	if len(s.items) > 0 {
		return s.items[0]
	}
	return Profile{}
}
