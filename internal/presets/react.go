package presets

import "github.com/HenryVilani/directory-lint/api"

// ReactOptions toggles optional parts of the React layout.
type ReactOptions struct {
	TypeScript bool `yaml:"typescript"`
	Redux      bool `yaml:"redux"`
	Router     bool `yaml:"router"`
	Testing    bool `yaml:"testing"`
}

// DefaultReactOptions enables TypeScript and tests.
func DefaultReactOptions() ReactOptions {
	return ReactOptions{TypeScript: true, Testing: true}
}

// React describes a create-react-app style project.
func React(o ReactOptions) *api.Schema {
	jsx := ext(o.TypeScript, "tsx", "jsx")
	test := ext(o.TypeScript, "tsx", "js")

	src := api.NewSchema().
		Set("App."+jsx, file(true)).
		Set("App.test."+test, file(o.Testing)).
		Set("App.css", file(false)).
		Set("index."+jsx, file(true)).
		Set("index.css", file(false)).
		Set("components", dir(false, nil)).
		Set("hooks", dir(false, nil)).
		Set("utils", dir(false, nil)).
		Set("assets", dir(false, nil))

	if o.Redux {
		src.Set("store", dir(true, api.NewSchema().
			Set("index."+ext(o.TypeScript, "ts", "js"), file(true)).
			Set("slices", dir(false, nil))))
	}
	if o.Router {
		src.Set("pages", dir(false, nil)).
			Set("routes", dir(false, nil))
	}

	return api.NewSchema().
		Set("src", dir(true, src)).
		Set("public", dir(true, api.NewSchema().
			Set("index.html", file(true)).
			Set("favicon.ico", file(false)).
			Set("manifest.json", file(false)))).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))
}
