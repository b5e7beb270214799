package presets

import "github.com/HenryVilani/directory-lint/api"

// VueOptions toggles the optional create-vue features.
type VueOptions struct {
	TypeScript bool `yaml:"typescript"`
	Pinia      bool `yaml:"pinia"`
	Router     bool `yaml:"router"`
	Vuetify    bool `yaml:"vuetify"`
	Testing    bool `yaml:"testing"`
}

// DefaultVueOptions returns the create-vue defaults.
func DefaultVueOptions() VueOptions {
	return VueOptions{TypeScript: true}
}

// Vue describes a Vue 3 application scaffolded by create-vue.
func Vue(o VueOptions) *api.Schema {
	js := ext(o.TypeScript, "ts", "js")

	src := api.NewSchema().
		Set("main."+js, file(true)).
		Set("App.vue", file(true)).
		Set("components", dir(false, api.NewSchema().
			Set("*.vue", example(false, "HelloWorld.vue")))).
		Set("views", dir(o.Router, api.NewSchema().
			Set("*.vue", example(false, "HomeView.vue")))).
		Set("composables", dir(false, nil)).
		Set("assets", dir(false, nil))

	if o.Pinia {
		src.Set("stores", dir(true, api.NewSchema().
			Set("*."+js, example(false, "counter."+js))))
	}
	if o.Router {
		src.Set("router", dir(true, api.NewSchema().
			Set("index."+js, file(true))))
	}
	if o.Vuetify {
		src.Set("plugins", dir(true, api.NewSchema().
			Set("vuetify."+js, file(true))))
	}

	s := api.NewSchema().
		Set("src", dir(true, src)).
		Set("public", dir(true, nil)).
		Set("package.json", file(true)).
		Set("vite.config.ts", file(o.TypeScript)).
		Set("vite.config.js", file(!o.TypeScript)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set("tsconfig.app.json", file(o.TypeScript)).
		Set("tsconfig.node.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Testing {
		s.Set("tests", dir(true, api.NewSchema().
			Set("unit", dir(false, nil)).
			Set("e2e", dir(false, nil)))).
			Set("vitest.config.ts", file(o.TypeScript))
	}
	return s
}
