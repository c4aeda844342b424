package inventory

// WarningCode classifies a diagnostic produced while testing a citation
// scheme.
type WarningCode int

const (
	// WarnParse means the target document could not be parsed.
	WarnParse WarningCode = iota
	// WarnUnresolvablePath means a path expression failed to evaluate,
	// e.g. because of an unbound namespace prefix.
	WarnUnresolvablePath
	// WarnNoShortcuts means a raw scope/xpath carries no namespace
	// shortcut at all.
	WarnNoShortcuts
	// WarnUnboundShortcuts means a scope/xpath still carries a shortcut
	// after rewriting, so a used prefix was never bound.
	WarnUnboundShortcuts
)

func (c WarningCode) String() string {
	switch c {
	case WarnParse:
		return "parse"
	case WarnUnresolvablePath:
		return "unresolvable-path"
	case WarnNoShortcuts:
		return "no-namespace-shortcuts"
	case WarnUnboundShortcuts:
		return "unbound-namespace-shortcuts"
	default:
		return "unknown"
	}
}

// Warning is one diagnostic emitted during citation testing. Warnings
// explain failures; they never affect status on their own.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Result is the outcome of testing a citation chain against a target:
// one status boolean per citation level actually evaluated, in
// outer-to-inner order, plus the diagnostics gathered along the way.
type Result struct {
	Status   []bool
	Warnings []Warning
}

// Passed reports whether every evaluated level matched.
func (r Result) Passed() bool {
	if len(r.Status) == 0 {
		return false
	}
	for _, ok := range r.Status {
		if !ok {
			return false
		}
	}
	return true
}

// WarningMessages flattens the diagnostics to plain strings.
func (r Result) WarningMessages() []string {
	if len(r.Warnings) == 0 {
		return nil
	}
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = w.Message
	}
	return msgs
}
