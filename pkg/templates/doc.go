// Package templates provides a cached, filesystem-backed html/template
// renderer for Plinth applications.
//
// Templates are loaded lazily by name and the parsed form is cached, so the
// filesystem is read once per template. The renderer plugs into the app via
// WithTemplates, which also installs the urlPath template function for
// reversing named routes:
//
//	//go:embed views
//	var viewsFS embed.FS
//
//	tmpl := templates.New(viewsFS, templates.Config{Dir: "views"})
//	app := plinth.New(
//	    plinth.WithTemplates(tmpl),
//	)
//
// Inside a template:
//
//	<a href="{{ urlPath "user_detail" "id" .UserID }}">Profile</a>
//
// Component adapts a named template to a renderable component so file-based
// templates and generated templ views can be used interchangeably.
package templates
