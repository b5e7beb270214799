package presets

import "github.com/HenryVilani/directory-lint/api"

// NextJSOptions selects the router flavour and tooling of a Next.js app.
type NextJSOptions struct {
	AppRouter  bool `yaml:"app_router"`
	TypeScript bool `yaml:"typescript"`
	Tailwind   bool `yaml:"tailwind"`
	SrcDir     bool `yaml:"src_dir"`
	ESLint     bool `yaml:"eslint"`
}

// DefaultNextJSOptions returns the app router layout with TypeScript.
func DefaultNextJSOptions() NextJSOptions {
	return NextJSOptions{AppRouter: true, TypeScript: true, ESLint: true}
}

// NextJS describes a Next.js application using either the app or the pages router.
func NextJS(o NextJSOptions) *api.Schema {
	jsx := ext(o.TypeScript, "tsx", "jsx")
	cfg := ext(o.TypeScript, "ts", "js")

	routerDir, router := "pages", api.NewSchema().
		Set("_app."+jsx, file(true)).
		Set("_document."+jsx, file(false)).
		Set("index."+jsx, file(true)).
		Set("api", dir(false, api.NewSchema().
			Set("*.ts", example(false, "hello.ts"))))
	if o.AppRouter {
		routerDir, router = "app", api.NewSchema().
			Set("layout."+jsx, file(true)).
			Set("page."+jsx, file(true)).
			Set("globals.css", file(false)).
			Set("api", dir(false, api.NewSchema().
				Set("*", &api.Directory{Example: "users", Children: api.NewSchema().
					Set("route."+cfg, file(true))})))
	}

	s := api.NewSchema().
		Set("package.json", file(true)).
		Set("next.config."+cfg, file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".eslintrc.json", file(o.ESLint)).
		Set("tailwind.config.js", file(o.Tailwind)).
		Set("postcss.config.js", file(o.Tailwind)).
		Set("public", dir(true, nil)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.SrcDir {
		return s.Set("src", dir(true, api.NewSchema().
			Set(routerDir, dir(true, router)).
			Set("components", dir(false, nil))))
	}
	return s.Set(routerDir, dir(true, router)).
		Set("components", dir(false, nil))
}
