package presets

import "github.com/HenryVilani/directory-lint/api"

// ViteOptions selects the framework and tooling of a Vite project.
type ViteOptions struct {
	TypeScript bool `yaml:"typescript"`
	React      bool `yaml:"react"`
	Vue        bool `yaml:"vue"`
	Svelte     bool `yaml:"svelte"`
	Tailwind   bool `yaml:"tailwind"`
	Vitest     bool `yaml:"vitest"`
}

// DefaultViteOptions returns the options of a plain TypeScript Vite project.
func DefaultViteOptions() ViteOptions {
	return ViteOptions{TypeScript: true}
}

// Vite describes a Vite project root.
func Vite(o ViteOptions) *api.Schema {
	return api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("main.ts", file(!o.TypeScript)).
			Set("main.tsx", file(o.TypeScript && o.React)).
			Set("App.tsx", file(o.React)).
			Set("App.vue", file(o.Vue)).
			Set("App.svelte", file(o.Svelte)).
			Set("index.css", file(false)).
			Set("assets", dir(false, nil)).
			Set("components", dir(false, nil)))).
		Set("public", dir(true, nil)).
		Set("index.html", file(true)).
		Set("package.json", file(true)).
		Set("vite.config.ts", file(o.TypeScript)).
		Set("vite.config.js", file(!o.TypeScript)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set("tsconfig.node.json", file(o.TypeScript)).
		Set("tailwind.config.js", file(o.Tailwind)).
		Set("postcss.config.js", file(o.Tailwind)).
		Set("vitest.config.ts", file(o.Vitest)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))
}
