package presets

import "github.com/HenryVilani/directory-lint/api"

// MonorepoOptions selects the package manager and shared tooling.
type MonorepoOptions struct {
	TypeScript bool `yaml:"typescript"`
	// PackageManager is one of npm, yarn or pnpm.
	PackageManager string `yaml:"package_manager"`
	Turborepo      bool   `yaml:"turborepo"`
	Nx             bool   `yaml:"nx"`
	Lerna          bool   `yaml:"lerna"`
}

// DefaultMonorepoOptions returns a pnpm workspace driven by Turborepo.
func DefaultMonorepoOptions() MonorepoOptions {
	return MonorepoOptions{TypeScript: true, PackageManager: "pnpm", Turborepo: true}
}

// Monorepo describes a workspace with packages/* and apps/* members.
func Monorepo(o MonorepoOptions) *api.Schema {
	s := api.NewSchema().
		Set("packages", dir(true, api.NewSchema().
			Set("*", &api.Directory{Optional: true, Example: "web", Children: api.NewSchema().
				Set("package.json", file(true)).
				Set("src", dir(false, nil)).
				Set("tsconfig.json", file(o.TypeScript))}))).
		Set("apps", dir(false, api.NewSchema().
			Set("*", &api.Directory{Optional: true, Example: "web", Children: api.NewSchema().
				Set("package.json", file(true)).
				Set("src", dir(false, nil))}))).
		Set("package.json", file(true)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	switch o.PackageManager {
	case "pnpm":
		s.Set("pnpm-workspace.yaml", file(true)).
			Set("pnpm-lock.yaml", file(false))
	case "yarn":
		s.Set("yarn.lock", file(false))
	case "npm":
		s.Set("package-lock.json", file(false))
	}

	if o.Turborepo {
		s.Set("turbo.json", file(true))
	}
	if o.Nx {
		s.Set("nx.json", file(true)).
			Set(".nxignore", file(false))
	}
	if o.Lerna {
		s.Set("lerna.json", file(true))
	}
	return s
}
