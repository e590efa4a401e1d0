package content

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Issue is one failed consistency check.
type Issue struct {
	Check  string
	Detail string
}

func (i Issue) String() string { return i.Check + ": " + i.Detail }

// CheckProjectParity verifies that both locales list the same projects,
// matched by name, with identical non-translatable fields.
func CheckProjectParity(en, fa *Portfolio) []Issue {
	const check = "projects"
	var issues []Issue
	add := func(format string, args ...any) {
		issues = append(issues, Issue{Check: check, Detail: fmt.Sprintf(format, args...)})
	}

	if en == nil || fa == nil {
		add("portfolio data missing for a locale")
		return issues
	}
	if len(en.Projects) == 0 {
		add("English projects list is empty")
	}
	if len(fa.Projects) == 0 {
		add("Persian projects list is empty")
	}
	if len(en.Projects) != len(fa.Projects) {
		add("count mismatch (en=%d, fa=%d)", len(en.Projects), len(fa.Projects))
	}

	byName := make(map[string]Project, len(fa.Projects))
	for _, p := range fa.Projects {
		byName[p.Name] = p
	}
	for _, p := range en.Projects {
		if strings.TrimSpace(p.Name) == "" {
			add("project with missing name in en data")
			continue
		}
		m, ok := byName[p.Name]
		if !ok {
			add("missing project in fa data: %s", p.Name)
			continue
		}
		if p.Opensource != m.Opensource {
			add("mismatch opensource for %q (en=%t, fa=%t)", p.Name, p.Opensource, m.Opensource)
		}
		if p.Thumbnail != m.Thumbnail {
			add("mismatch thumbnail for %q", p.Name)
		}
		if !slices.Equal(linkTargets(p.Links), linkTargets(m.Links)) {
			add("mismatch links[].to for %q", p.Name)
		}
		if !slices.Equal(p.Icons, m.Icons) {
			add("mismatch icons for %q", p.Name)
		}
	}
	return issues
}

func linkTargets(links []Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if l.To != "" {
			out = append(out, l.To)
		}
	}
	return out
}

// CheckMessages verifies that every locale defines the same UI message
// keys and that no value starts with whitespace.
func CheckMessages(msgs map[Locale]map[string]string) []Issue {
	var issues []Issue
	base := msgs[DefaultLocale]
	for _, loc := range Locales {
		if loc == DefaultLocale {
			continue
		}
		other := msgs[loc]
		for _, k := range missingKeys(base, other) {
			issues = append(issues, Issue{Check: "messages", Detail: fmt.Sprintf("key in %s but not %s: %s", DefaultLocale, loc, k)})
		}
		for _, k := range missingKeys(other, base) {
			issues = append(issues, Issue{Check: "messages", Detail: fmt.Sprintf("key in %s but not %s: %s", loc, DefaultLocale, k)})
		}
	}
	for _, loc := range Locales {
		keys := sortedKeys(msgs[loc])
		for _, k := range keys {
			v := msgs[loc][k]
			if v != "" && unicode.IsSpace([]rune(v)[0]) {
				issues = append(issues, Issue{Check: "messages", Detail: fmt.Sprintf("leading whitespace: %s:%s", loc, k)})
			}
		}
	}
	return issues
}

func missingKeys(from, in map[string]string) []string {
	var out []string
	for _, k := range sortedKeys(from) {
		if _, ok := in[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
