package rewrite

import (
	"regexp"
	"strings"
)

// BasePathPlaceholder is replaced by the output directory in replacement text
const BasePathPlaceholder = "${basePath}"

// ExpandBasePath substitutes BasePathPlaceholder in s
func ExpandBasePath(s, basePath string) string {
	return strings.ReplaceAll(s, BasePathPlaceholder, basePath)
}

// Replace returns a transform replacing every occurrence of old with new
func Replace(old, new string) TransformFunc {
	return func(content, basePath string) string {
		return strings.ReplaceAll(content, old, ExpandBasePath(new, basePath))
	}
}

// RegexpReplace returns a transform replacing every match of re with repl.
// repl may reference capture groups ($1, ${name}).
func RegexpReplace(re *regexp.Regexp, repl string) TransformFunc {
	return func(content, basePath string) string {
		return re.ReplaceAllString(content, ExpandBasePath(repl, basePath))
	}
}

// Chain applies transforms in order
func Chain(transforms ...TransformFunc) TransformFunc {
	return func(content, basePath string) string {
		for _, t := range transforms {
			content = t(content, basePath)
		}
		return content
	}
}
