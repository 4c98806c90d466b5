package domain

import "strings"

// ExpandScriptCommand substitutes every workspace placeholder in template
// with root quoted as one shell word. The rest of the template reaches the
// shell as written, so "~", "$HOME" and interpreter prefixes keep working.
// The placeholder must therefore not sit inside quotes of its own.
func ExpandScriptCommand(template, root string) string {
	return strings.ReplaceAll(template, WorkspacePlaceholder, QuoteShellWord(root))
}

// QuoteShellWord returns s quoted for a POSIX shell. Words made only of
// safe characters are returned as is.
func QuoteShellWord(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:=@%+,", r)
}
