package presets

import "github.com/HenryVilani/directory-lint/api"

// NuxtOptions toggles the modules of a Nuxt 3 app.
type NuxtOptions struct {
	TypeScript bool `yaml:"typescript"`
	Pinia      bool `yaml:"pinia"`
	Tailwind   bool `yaml:"tailwind"`
	Content    bool `yaml:"content"`
}

// DefaultNuxtOptions returns a TypeScript app without extra modules.
func DefaultNuxtOptions() NuxtOptions {
	return NuxtOptions{TypeScript: true}
}

// Nuxt describes a Nuxt 3 app. Only the config, package manifest and
// gitignore are mandatory; every directory is optional.
func Nuxt(o NuxtOptions) *api.Schema {
	js := ext(o.TypeScript, "ts", "js")

	s := api.NewSchema().
		Set("pages", dir(false, api.NewSchema().
			Set("index.vue", file(false)).
			Set("*.vue", example(false, "about.vue")))).
		Set("components", dir(false, api.NewSchema().
			Set("*.vue", example(false, "TheHeader.vue")))).
		Set("layouts", dir(false, api.NewSchema().
			Set("default.vue", file(false)))).
		Set("composables", dir(false, nil)).
		Set("plugins", dir(false, nil)).
		Set("middleware", dir(false, nil)).
		Set("server", dir(false, api.NewSchema().
			Set("api", dir(false, nil)).
			Set("routes", dir(false, nil)).
			Set("middleware", dir(false, nil)))).
		Set("assets", dir(false, api.NewSchema().
			Set("css", dir(false, nil)))).
		Set("public", dir(false, nil)).
		Set("app.vue", file(false)).
		Set("nuxt.config."+js, file(true)).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Pinia {
		s.Set("stores", dir(false, api.NewSchema().
			Set("*."+js, example(false, "counter."+js))))
	}
	if o.Tailwind {
		s.Set("tailwind.config.js", file(true))
	}
	if o.Content {
		s.Set("content", dir(true, api.NewSchema().
			Set("*.md", example(false, "index.md"))))
	}
	return s
}
