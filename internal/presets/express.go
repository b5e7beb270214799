package presets

import "github.com/HenryVilani/directory-lint/api"

// ExpressOptions toggles optional layers of the Express server.
type ExpressOptions struct {
	TypeScript     bool `yaml:"typescript"`
	MongoDB        bool `yaml:"mongodb"`
	PostgreSQL     bool `yaml:"postgresql"`
	Prisma         bool `yaml:"prisma"`
	Authentication bool `yaml:"authentication"`
	Testing        bool `yaml:"testing"`
}

// DefaultExpressOptions returns a TypeScript server without a database.
func DefaultExpressOptions() ExpressOptions {
	return ExpressOptions{TypeScript: true}
}

// Express describes a layered Express API server.
func Express(o ExpressOptions) *api.Schema {
	js := ext(o.TypeScript, "ts", "js")
	db := o.MongoDB || o.PostgreSQL

	layer := func(required bool, exampleName string) *api.Directory {
		return dir(required, api.NewSchema().Set("*."+js, example(false, exampleName+"."+js)))
	}

	src := api.NewSchema().
		Set("index."+js, file(true)).
		Set("app."+js, file(true)).
		Set("routes", layer(true, "users")).
		Set("controllers", layer(true, "user.controller")).
		Set("services", layer(false, "user.service")).
		Set("models", layer(db, "user.model")).
		Set("middlewares", layer(false, "auth.middleware")).
		Set("utils", dir(false, nil)).
		Set("config", dir(false, api.NewSchema().
			Set("database."+js, file(db))))

	if o.Authentication {
		src.Set("auth", dir(true, api.NewSchema().
			Set("auth.controller."+js, file(true)).
			Set("auth.service."+js, file(true))))
	}

	s := api.NewSchema().
		Set("src", dir(true, src)).
		Set("tests", dir(o.Testing, api.NewSchema().
			Set("*.test."+js, example(false, "user.test."+js)))).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".env", file(false)).
		Set(".env.example", file(false)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Prisma {
		s.Set("prisma", dir(true, api.NewSchema().
			Set("schema.prisma", file(true)).
			Set("migrations", dir(false, nil))))
	}
	return s
}
