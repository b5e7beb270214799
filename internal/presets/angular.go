package presets

import "github.com/HenryVilani/directory-lint/api"

// AngularOptions toggles optional parts of an Angular CLI workspace.
type AngularOptions struct {
	// Standalone selects app.config.ts/app.routes.ts over NgModule files.
	Standalone bool `yaml:"standalone"`
	NgRx       bool `yaml:"ngrx"`
	Material   bool `yaml:"material"`
	Testing    bool `yaml:"testing"`
}

// DefaultAngularOptions returns a standalone-components app with tests.
func DefaultAngularOptions() AngularOptions {
	return AngularOptions{Standalone: true, Testing: true}
}

// Angular describes an Angular CLI application.
func Angular(o AngularOptions) *api.Schema {
	app := api.NewSchema().
		Set("app.component.ts", file(true)).
		Set("app.component.html", file(true)).
		Set("app.component.css", file(false)).
		Set("app.component.spec.ts", file(o.Testing)).
		Set("app.config.ts", file(o.Standalone)).
		Set("app.module.ts", file(!o.Standalone)).
		Set("app.routes.ts", file(o.Standalone)).
		Set("app-routing.module.ts", file(!o.Standalone)).
		Set("components", dir(false, nil)).
		Set("services", dir(false, nil)).
		Set("models", dir(false, nil)).
		Set("guards", dir(false, nil)).
		Set("interceptors", dir(false, nil))

	if o.NgRx {
		app.Set("store", dir(true, api.NewSchema().
			Set("actions", dir(false, nil)).
			Set("reducers", dir(false, nil)).
			Set("effects", dir(false, nil)).
			Set("selectors", dir(false, nil))))
	}

	return api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("main.ts", file(true)).
			Set("index.html", file(true)).
			Set("styles.css", file(false)).
			Set("app", dir(true, app)).
			Set("assets", dir(false, nil)).
			Set("environments", dir(false, api.NewSchema().
				Set("environment.ts", file(true)).
				Set("environment.development.ts", file(false)))))).
		Set("angular.json", file(true)).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(true)).
		Set("tsconfig.app.json", file(true)).
		Set("tsconfig.spec.json", file(o.Testing)).
		Set(".editorconfig", file(false)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))
}
