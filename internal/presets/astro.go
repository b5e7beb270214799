package presets

import "github.com/HenryVilani/directory-lint/api"

// AstroOptions selects the tooling of an Astro site. The UI framework
// integrations are accepted but add no entries.
type AstroOptions struct {
	TypeScript bool `yaml:"typescript"`
	React      bool `yaml:"react"`
	Vue        bool `yaml:"vue"`
	Svelte     bool `yaml:"svelte"`
	Tailwind   bool `yaml:"tailwind"`
	MDX        bool `yaml:"mdx"`
}

// DefaultAstroOptions returns a TypeScript site without integrations.
func DefaultAstroOptions() AstroOptions {
	return AstroOptions{TypeScript: true}
}

// Astro describes an Astro site with file-based pages.
func Astro(o AstroOptions) *api.Schema {
	astroFiles := func(exampleName string) *api.Directory {
		return dir(false, api.NewSchema().Set("*.astro", example(false, exampleName)))
	}

	pages := api.NewSchema().
		Set("index.astro", file(true)).
		Set("*.astro", example(false, "about.astro"))
	if o.MDX {
		pages.Set("*.mdx", example(false, "blog.mdx"))
	}

	s := api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("pages", dir(true, pages)).
			Set("components", astroFiles("Card.astro")).
			Set("layouts", astroFiles("Layout.astro")).
			Set("content", dir(false, api.NewSchema().
				Set("config.ts", file(false)))).
			Set("styles", dir(false, nil)).
			Set("assets", dir(false, nil)))).
		Set("public", dir(true, nil)).
		Set("astro.config.mjs", file(true)).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Tailwind {
		s.Set("tailwind.config.cjs", file(true))
	}
	return s
}
