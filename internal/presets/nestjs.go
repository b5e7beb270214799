package presets

import "github.com/HenryVilani/directory-lint/api"

// NestJSOptions toggles the transport, persistence and docs layers of a Nest app.
type NestJSOptions struct {
	Microservices bool `yaml:"microservices"`
	GraphQL       bool `yaml:"graphql"`
	Prisma        bool `yaml:"prisma"`
	TypeORM       bool `yaml:"typeorm"`
	Swagger       bool `yaml:"swagger"`
	Testing       bool `yaml:"testing"`
}

// DefaultNestJSOptions returns a REST app with unit and e2e tests.
func DefaultNestJSOptions() NestJSOptions {
	return NestJSOptions{Testing: true}
}

// NestJS describes a Nest CLI project with one directory per feature module.
func NestJS(o NestJSOptions) *api.Schema {
	feature := &api.Directory{Optional: true, Example: "users", Children: api.NewSchema().
		Set("*.module.ts", example(false, "users.module.ts")).
		Set("*.controller.ts", example(false, "users.controller.ts")).
		Set("*.service.ts", example(false, "users.service.ts")).
		Set("*.controller.spec.ts", example(false, "users.controller.spec.ts")).
		Set("*.service.spec.ts", example(false, "users.service.spec.ts")).
		Set("dto", dir(false, api.NewSchema().
			Set("*.dto.ts", example(false, "create-user.dto.ts")))).
		Set("entities", dir(false, api.NewSchema().
			Set("*.entity.ts", example(false, "user.entity.ts"))))}

	src := api.NewSchema().
		Set("main.ts", file(true)).
		Set("app.module.ts", file(true)).
		Set("app.controller.ts", file(true)).
		Set("app.controller.spec.ts", file(o.Testing)).
		Set("app.service.ts", file(true))
	if o.GraphQL {
		// Declared before the feature wildcard so resolvers are not claimed as modules.
		src.Set("schema.gql", file(true)).
			Set("*.resolver.ts", example(false, "users.resolver.ts"))
	}
	src.Set("*", feature).
		Set("common", dir(false, api.NewSchema().
			Set("filters", dir(false, nil)).
			Set("guards", dir(false, nil)).
			Set("interceptors", dir(false, nil)).
			Set("pipes", dir(false, nil)).
			Set("decorators", dir(false, nil)))).
		Set("config", dir(false, nil))
	if o.Microservices {
		src.Set("microservices", dir(false, nil))
	}

	s := api.NewSchema().
		Set("src", dir(true, src)).
		Set("test", dir(o.Testing, api.NewSchema().
			Set("app.e2e-spec.ts", file(true)).
			Set("jest-e2e.json", file(true)))).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(true)).
		Set("tsconfig.build.json", file(true)).
		Set("nest-cli.json", file(true)).
		Set(".eslintrc.js", file(true)).
		Set(".prettierrc", file(true)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Prisma {
		s.Set("prisma", dir(true, api.NewSchema().
			Set("schema.prisma", file(true)).
			Set("migrations", dir(false, nil))))
	}
	return s
}
