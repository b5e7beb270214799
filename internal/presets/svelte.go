package presets

import "github.com/HenryVilani/directory-lint/api"

// SvelteAdapters lists the accepted SvelteOptions.Adapter values.
var SvelteAdapters = []string{"auto", "node", "static", "vercel", "netlify"}

// SvelteOptions selects SvelteKit or a plain Svelte + Vite app.
type SvelteOptions struct {
	SvelteKit  bool `yaml:"sveltekit"`
	TypeScript bool `yaml:"typescript"`
	Tailwind   bool `yaml:"tailwind"`
	// Adapter is the SvelteKit deployment adapter; it adds no entries.
	Adapter string `yaml:"adapter"`
}

// DefaultSvelteOptions returns a TypeScript SvelteKit app with the auto adapter.
func DefaultSvelteOptions() SvelteOptions {
	return SvelteOptions{SvelteKit: true, TypeScript: true, Adapter: "auto"}
}

// Svelte describes a SvelteKit app, or a Vite-based Svelte app when SvelteKit is off.
func Svelte(o SvelteOptions) *api.Schema {
	js := ext(o.TypeScript, "ts", "js")

	if !o.SvelteKit {
		return api.NewSchema().
			Set("src", dir(true, api.NewSchema().
				Set("App.svelte", file(true)).
				Set("main."+js, file(true)).
				Set("lib", dir(false, nil)).
				Set("assets", dir(false, nil)))).
			Set("public", dir(true, nil)).
			Set("package.json", file(true)).
			Set("vite.config."+js, file(true)).
			Set("svelte.config.js", file(true)).
			Set("tsconfig.json", file(o.TypeScript)).
			Set(".gitignore", file(true)).
			Set("README.md", file(false))
	}

	s := api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("routes", dir(true, api.NewSchema().
				Set("+page.svelte", file(true)).
				Set("+layout.svelte", file(false)).
				Set("+page."+js, file(false)).
				Set("+layout."+js, file(false)))).
			Set("lib", dir(false, api.NewSchema().
				Set("components", dir(false, nil)).
				Set("index."+js, file(false)))).
			Set("app.html", file(true)).
			Set("app.css", file(false)))).
		Set("static", dir(true, nil)).
		Set("package.json", file(true)).
		Set("svelte.config.js", file(true)).
		Set("vite.config."+js, file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Tailwind {
		s.Set("tailwind.config.js", file(true)).
			Set("postcss.config.js", file(true))
	}
	return s
}
