package blog

import "embed"

// EmbeddedAssets contains static assets shipped with the engine, served
// under /assets/.
//
//go:embed assets/*
var EmbeddedAssets embed.FS
