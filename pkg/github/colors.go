package github

// defaultLanguageColor is used for languages missing from the color table.
const defaultLanguageColor = "#8b949e"

// languageColors maps common language names to their GitHub display colors.
// The REST API only reports a repository's primary language by name, so the
// color has to be looked up locally; the GraphQL API delivers colors inline.
var languageColors = map[string]string{
	"JavaScript":       "#f1e05a",
	"TypeScript":       "#3178c6",
	"Python":           "#3572A5",
	"Java":             "#b07219",
	"Go":               "#00ADD8",
	"Rust":             "#dea584",
	"C":                "#555555",
	"C++":              "#f34b7d",
	"C#":               "#178600",
	"Ruby":             "#701516",
	"PHP":              "#4F5D95",
	"Swift":            "#F05138",
	"Kotlin":           "#A97BFF",
	"Dart":             "#00B4AB",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"SCSS":             "#c6538c",
	"Shell":            "#89e051",
	"Vue":              "#41b883",
	"Svelte":           "#ff3e00",
	"Elixir":           "#6e4a7e",
	"Erlang":           "#B83998",
	"Haskell":          "#5e5086",
	"Lua":              "#000080",
	"R":                "#198CE7",
	"Scala":            "#c22d40",
	"Clojure":          "#db5855",
	"Perl":             "#0298c3",
	"Objective-C":      "#438eff",
	"Zig":              "#ec915c",
	"Julia":            "#a270ba",
	"OCaml":            "#ef7a08",
	"Nix":              "#7e7eff",
	"Jupyter Notebook": "#DA5B0B",
	"Vim Script":       "#199f4b",
	"Dockerfile":       "#384d54",
	"Makefile":         "#427819",
	"TeX":              "#3D6117",
	"Emacs Lisp":       "#c065db",
	"Assembly":         "#6E4C13",
	"Solidity":         "#AA6746",
}

// languageColor returns the display color for a language name.
func languageColor(name string) string {
	if c, ok := languageColors[name]; ok {
		return c
	}
	return defaultLanguageColor
}
