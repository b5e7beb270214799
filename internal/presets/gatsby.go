package presets

import "github.com/HenryVilani/directory-lint/api"

// GatsbyOptions toggles the content sources and styling of a Gatsby site.
type GatsbyOptions struct {
	TypeScript bool `yaml:"typescript"`
	Contentful bool `yaml:"contentful"`
	MDX        bool `yaml:"mdx"`
	Tailwind   bool `yaml:"tailwind"`
}

// DefaultGatsbyOptions returns a TypeScript site.
func DefaultGatsbyOptions() GatsbyOptions {
	return GatsbyOptions{TypeScript: true}
}

// Gatsby describes a Gatsby site with pages, templates and gatsby-* config files.
func Gatsby(o GatsbyOptions) *api.Schema {
	jsx := ext(o.TypeScript, "tsx", "jsx")
	js := ext(o.TypeScript, "ts", "js")
	components := func(exampleName string) *api.Directory {
		return dir(false, api.NewSchema().Set("*."+jsx, example(false, exampleName+"."+jsx)))
	}

	s := api.NewSchema().
		Set("src", dir(true, api.NewSchema().
			Set("pages", dir(true, api.NewSchema().
				Set("index."+jsx, file(true)).
				Set("404."+jsx, file(false)).
				Set("*."+jsx, example(false, "about."+jsx)))).
			Set("components", components("layout")).
			Set("templates", components("blog-post")).
			Set("images", dir(false, nil)).
			Set("styles", dir(false, nil)))).
		Set("static", dir(false, nil)).
		Set("content", dir(o.MDX, api.NewSchema().
			Set("*.mdx", example(false, "hello-world.mdx")))).
		Set("package.json", file(true)).
		Set("gatsby-config."+js, file(true)).
		Set("gatsby-node."+js, file(false)).
		Set("gatsby-browser."+js, file(false)).
		Set("gatsby-ssr."+js, file(false)).
		Set("tsconfig.json", file(o.TypeScript)).
		Set(".gitignore", file(true)).
		Set("README.md", file(false))

	if o.Tailwind {
		s.Set("tailwind.config.js", file(true)).
			Set("postcss.config.js", file(true))
	}
	return s
}
