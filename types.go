package blog

import "github.com/smile243/blog/views"

// Post is the core content type stored in SQLite and rendered by templates.
type Post = views.Post
