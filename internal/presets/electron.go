package presets

import "github.com/HenryVilani/directory-lint/api"

// ElectronOptions selects the renderer stack of an Electron app.
type ElectronOptions struct {
	TypeScript bool `yaml:"typescript"`
	React      bool `yaml:"react"`
	Vue        bool `yaml:"vue"`
	Vite       bool `yaml:"vite"`
}

// DefaultElectronOptions returns a TypeScript app with a plain renderer.
func DefaultElectronOptions() ElectronOptions {
	return ElectronOptions{TypeScript: true}
}

// Electron describes an Electron app split into main and renderer processes.
func Electron(o ElectronOptions) *api.Schema {
	js := ext(o.TypeScript, "ts", "js")
	ui := js
	switch {
	case o.React:
		ui = "tsx"
	case o.Vue:
		ui = "vue"
	}

	s := api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("main", dir(true, api.NewSchema().
				Set("main."+js, file(true)).
				Set("preload."+js, file(true)))).
			Set("renderer", dir(true, api.NewSchema().
				Set("index.html", file(true)).
				Set("index."+ui, file(true)).
				Set("components", dir(false, nil)).
				Set("assets", dir(false, nil)))))).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set("electron-builder.json", file(false)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Vite {
		s.Set("vite.config."+js, file(true))
	}
	return s
}
