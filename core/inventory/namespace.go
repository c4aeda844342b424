package inventory

import (
	"regexp"
	"strings"
)

// counterPlaceholder marks the citation counter attribute in a scheme's
// xpath, e.g. /tei:div[@n='?']. Counter values are unknown at validation
// time, so the placeholder is reduced to an existential @n check.
const counterPlaceholder = "@n='?'"

// shortcutPattern matches namespace prefix shortcuts like "tei:".
// Process-wide immutable; compiled once.
var shortcutPattern = regexp.MustCompile(`[a-zA-Z0-9]+:`)

// bracedPattern matches an expanded namespace in braced form, {uri}.
var bracedPattern = regexp.MustCompile(`\{[^}]*\}`)

// RewriteRule is one literal find/replace substitution applied to a
// document's logical name to obtain its physical file path.
type RewriteRule struct {
	Find    string
	Replace string
}

// RewriteRules is an ordered set of literal substitutions. Rules are not
// regular expressions; they apply in order over the raw value.
type RewriteRules []RewriteRule

// Apply runs every rule over s in order. When no rule matches, s is
// returned unchanged.
func (r RewriteRules) Apply(s string) string {
	for _, rule := range r {
		s = strings.ReplaceAll(s, rule.Find, rule.Replace)
	}
	return s
}

// Namespaces maps prefix shortcuts with their trailing colon (e.g. "tei:")
// to braced namespace URIs (e.g. "{http://www.tei-c.org/ns/1.0}"), the way
// a document's namespaceMapping elements declare them.
//
// Expansion iterates the table, so no declared prefix may be a substring of
// another; with distinct prefixes the result is order-insensitive.
type Namespaces map[string]string

// resolveExpr rewrites a path expression: the counter placeholder becomes an
// existential @n check, the addressing root is optionally replaced with the
// current-node marker, and every declared prefix is substituted by its
// braced namespace form. A prefix with no table entry is left untouched.
func (ns Namespaces) resolveExpr(expr string, removeRoot bool) string {
	expr = relativize(strings.ReplaceAll(expr, counterPlaceholder, "@n"), removeRoot)
	for prefix, uri := range ns {
		expr = strings.ReplaceAll(expr, prefix, uri)
	}
	return expr
}

// evalExpr rewrites a path expression for evaluation: same placeholder and
// root handling as resolveExpr, but prefixes stay shortcut form so the
// xpath engine can bind them to URIs itself. Unprefixed element steps are
// made namespace-strict, so an unqualified path never matches elements that
// live in a namespace.
func evalExpr(expr string, removeRoot bool) string {
	expr = relativize(strings.ReplaceAll(expr, counterPlaceholder, "@n"), removeRoot)
	parts := strings.Split(expr, "/")
	for i, part := range parts {
		parts[i] = strictStep(part)
	}
	return strings.Join(parts, "/")
}

// strictStep rewrites one unprefixed element step to require the empty
// namespace. Prefixed steps, markers, wildcards, and attribute steps pass
// through unchanged.
func strictStep(step string) string {
	name, predicate := step, ""
	if i := strings.Index(step, "["); i >= 0 {
		name, predicate = step[:i], step[i:]
	}
	if name == "" || name == "." || name == ".." || name == "*" ||
		strings.HasPrefix(name, "@") || strings.Contains(name, ":") {
		return step
	}
	return "*[local-name()='" + name + "' and namespace-uri()='']" + predicate
}

// relativize strips the addressing root, replacing it with the current-node
// marker so the expression evaluates from an already-located context node.
func relativize(expr string, removeRoot bool) string {
	if !removeRoot {
		return expr
	}
	parts := strings.Split(expr, "/")
	if len(parts) > 2 {
		parts = parts[2:]
	} else {
		parts = nil
	}
	return strings.Join(append([]string{"."}, parts...), "/")
}

// bindings converts the table to plain prefix-to-URI form for the xpath
// engine: colons and braces stripped.
func (ns Namespaces) bindings() map[string]string {
	m := make(map[string]string, len(ns))
	for prefix, uri := range ns {
		m[strings.TrimSuffix(prefix, ":")] = strings.TrimSuffix(strings.TrimPrefix(uri, "{"), "}")
	}
	return m
}

// hasShortcut reports whether s contains a prefix shortcut token, ignoring
// anything inside already-expanded braced namespaces (URIs carry their own
// "http:" which is not a shortcut).
func hasShortcut(s string) bool {
	return shortcutPattern.MatchString(bracedPattern.ReplaceAllString(s, ""))
}
