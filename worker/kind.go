// Package worker provides language service workers for editor
// sessions. Each worker kind serves a family of language labels and
// runs tokenize and validate jobs on its own goroutine, so parsing
// never blocks the surface that asked. A Router spawns workers
// lazily and hands the same instance to every label of a kind.
package worker

// Kind identifies one worker variety.
type Kind string

const (
	KindJSON       Kind = "json"
	KindCSS        Kind = "css"
	KindHTML       Kind = "html"
	KindTypeScript Kind = "typescript"
	KindYAML       Kind = "yaml"
	KindDefault    Kind = "default"
)

// KindForLabel maps an editor language label to the worker kind that
// serves it. Labels are the exact lowercase identifiers models are
// created with; anything unrecognized, including the empty string,
// falls through to KindDefault.
func KindForLabel(label string) Kind {
	switch label {
	case "json":
		return KindJSON
	case "css", "scss", "less":
		return KindCSS
	case "html", "handlebars", "razor":
		return KindHTML
	case "typescript", "javascript":
		return KindTypeScript
	case "yaml":
		return KindYAML
	default:
		return KindDefault
	}
}
