// Package presets builds schemas for common project layouts.
package presets

import (
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/HenryVilani/directory-lint/api"
)

// Preset is a named schema builder.
type Preset struct {
	Name        string
	Description string
	// Build applies key=value options on top of the preset defaults.
	Build func(opts map[string]string) (*api.Schema, error)
	// Defaults returns the default options, for display.
	Defaults func() any
}

var registry = map[string]Preset{}

func register(name, desc string, defaults func() any, build func(opts map[string]string) (*api.Schema, error)) {
	registry[name] = Preset{Name: name, Description: desc, Build: build, Defaults: defaults}
}

// registerOptions registers a preset whose options decode onto T.
func registerOptions[T any](name, desc string, defaults func() T, build func(T) (*api.Schema, error)) {
	register(name, desc,
		func() any { return defaults() },
		func(raw map[string]string) (*api.Schema, error) {
			opts := defaults()
			if err := decodeOptions(raw, &opts); err != nil {
				return nil, err
			}
			return build(opts)
		})
}

func always[T any](fn func(T) *api.Schema) func(T) (*api.Schema, error) {
	return func(o T) (*api.Schema, error) { return fn(o), nil }
}

func init() {
	registerOptions("angular", "Angular CLI application", DefaultAngularOptions, always(Angular))
	registerOptions("astro", "Astro site", DefaultAstroOptions, always(Astro))
	registerOptions("electron", "Electron desktop application", DefaultElectronOptions, always(Electron))
	registerOptions("express", "Express API server", DefaultExpressOptions, always(Express))
	registerOptions("gatsby", "Gatsby static site", DefaultGatsbyOptions, always(Gatsby))
	registerOptions("nestjs", "NestJS server application", DefaultNestJSOptions, always(NestJS))
	registerOptions("nextjs", "Next.js application", DefaultNextJSOptions, always(NextJS))
	registerOptions("nuxt", "Nuxt 3 application", DefaultNuxtOptions, always(Nuxt))
	registerOptions("react", "React application (create-react-app layout)", DefaultReactOptions, always(React))
	registerOptions("remix", "Remix application", DefaultRemixOptions, always(Remix))
	registerOptions("vite", "Vite project", DefaultViteOptions, always(Vite))
	registerOptions("vue", "Vue 3 application", DefaultVueOptions, always(Vue))

	registerOptions("monorepo", "JavaScript workspace monorepo", DefaultMonorepoOptions,
		func(o MonorepoOptions) (*api.Schema, error) {
			if !slices.Contains([]string{"npm", "yarn", "pnpm"}, o.PackageManager) {
				return nil, fmt.Errorf("package_manager: unsupported value %q", o.PackageManager)
			}
			return Monorepo(o), nil
		})
	registerOptions("svelte", "Svelte or SvelteKit application", DefaultSvelteOptions,
		func(o SvelteOptions) (*api.Schema, error) {
			if !slices.Contains(SvelteAdapters, o.Adapter) {
				return nil, fmt.Errorf("adapter: unsupported value %q", o.Adapter)
			}
			return Svelte(o), nil
		})
}

// List returns all presets sorted by name.
func List() []Preset {
	out := make([]Preset, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, error) {
	p, ok := registry[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q", name)
	}
	return p, nil
}

// decodeOptions resolves each raw value as a YAML scalar and decodes the
// result onto opts, which already holds the defaults.
func decodeOptions(raw map[string]string, opts any) error {
	if len(raw) == 0 {
		return nil
	}
	known, err := optionKeys(opts)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		if !known[k] {
			return fmt.Errorf("unknown option %q", k)
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: raw[k]},
		)
	}
	if err := m.Decode(opts); err != nil {
		return fmt.Errorf("decode options: %w", err)
	}
	return nil
}

func optionKeys(opts any) (map[string]bool, error) {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys, nil
}

func file(required bool) *api.File {
	return &api.File{Optional: !required}
}

func example(required bool, name string) *api.File {
	return &api.File{Optional: !required, Example: name}
}

func dir(required bool, children *api.Schema) *api.Directory {
	return &api.Directory{Optional: !required, Children: children}
}

func ext(ts bool, tsExt, jsExt string) string {
	if ts {
		return tsExt
	}
	return jsExt
}
