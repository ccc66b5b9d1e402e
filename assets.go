// Package recruitweb provides embedded assets for production builds.
package recruitweb

import "embed"

// In dev mode (DEV=true) assets are read from disk so edits show up on reload;
// otherwise they are served from these embedded filesystems.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
