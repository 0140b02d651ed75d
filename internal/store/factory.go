package store

// Stores hands out the Postgres-backed repositories. It is the default
// Provider; arangostore and memstore offer the same surface.
type Stores struct {
	db DBTX
}

func NewStores(db DBTX) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.db)
}

func (s *Stores) BlogPosts() BlogPostStore {
	return newBlogPostStore(s.db)
}

func (s *Stores) Events() EventStore {
	return newEventStore(s.db)
}

func (s *Stores) Tracks() TrackStore {
	return newTrackStore(s.db)
}

func (s *Stores) Stories() StoryStore {
	return newStoryStore(s.db)
}

func (s *Stores) Partners() PartnerStore {
	return newPartnerStore(s.db)
}

var _ Provider = (*Stores)(nil)
