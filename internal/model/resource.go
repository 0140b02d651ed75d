package model

// Resource names a CRUD-addressable collection. The value doubles as the
// URL segment under /api and as the name carried by change events.
type Resource string

const (
	ResourceBlogPosts Resource = "blog-posts"
	ResourceEvents    Resource = "events"
	ResourceTracks    Resource = "tracks"
	ResourceStories   Resource = "stories"
	ResourcePartners  Resource = "partners"
	ResourceUsers     Resource = "users"
)

// ContentResources are the publicly listable collections.
var ContentResources = []Resource{
	ResourceBlogPosts,
	ResourceEvents,
	ResourceTracks,
	ResourceStories,
	ResourcePartners,
}
