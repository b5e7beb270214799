package presets

import "github.com/HenryVilani/directory-lint/api"

// RemixOptions toggles the styling and database layers of a Remix app.
type RemixOptions struct {
	TypeScript bool `yaml:"typescript"`
	Tailwind   bool `yaml:"tailwind"`
	Prisma     bool `yaml:"prisma"`
}

// DefaultRemixOptions returns a TypeScript app.
func DefaultRemixOptions() RemixOptions {
	return RemixOptions{TypeScript: true}
}

// Remix describes a Remix app with flat file routes.
func Remix(o RemixOptions) *api.Schema {
	jsx := ext(o.TypeScript, "tsx", "jsx")

	s := api.NewSchema().
		Set("app", dir(true, api.NewSchema().
			Set("entry.client."+jsx, file(true)).
			Set("entry.server."+jsx, file(true)).
			Set("root."+jsx, file(true)).
			Set("routes", dir(true, api.NewSchema().
				Set("_index."+jsx, file(true)).
				Set("*."+jsx, example(false, "about."+jsx)))).
			Set("components", dir(false, nil)).
			Set("utils", dir(false, nil)).
			Set("styles", dir(false, api.NewSchema().
				Set("*.css", example(false, "global.css")))))).
		Set("public", dir(true, api.NewSchema().
			Set("favicon.ico", file(false)))).
		Set("package.json", file(true)).
		Set("remix.config."+ext(o.TypeScript, "ts", "js"), file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Tailwind {
		s.Set("tailwind.config.js", file(true)).
			Set("postcss.config.js", file(true))
	}
	if o.Prisma {
		s.Set("prisma", dir(true, api.NewSchema().
			Set("schema.prisma", file(true)).
			Set("migrations", dir(false, nil))))
	}
	return s
}
