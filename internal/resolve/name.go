package resolve

import (
	"fmt"
	"go/token"

	"cxxbind/internal/ir"
)

// TranslateIdentifier implements spec.md §4.7's "Translated identifier"
// rule: valid C++ identifiers pass through unchanged, empty parameter
// names become __param_<index>, and constructor/destructor spellings are
// handled by TranslateFunctionName before this is reached.
// ok is false for anything else the importer has no model for (operator
// overload names, user-defined literals, deduction guides).
func TranslateIdentifier(name string, paramIndex int) (ir.UnqualifiedIdentifier, bool) {
	if name == "" {
		return ir.Identifier(fmt.Sprintf("__param_%d", paramIndex)), true
	}
	if !isValidIdentifier(name) {
		return ir.UnqualifiedIdentifier{}, false
	}
	return ir.Identifier(name), true
}

// isValidIdentifier reuses go/token's identifier scanner as a stand-in for
// clang::IdentifierInfo validity checks — C++ and Go share the same basic
// identifier grammar (letter/underscore start, alnum/underscore body) for
// the ASCII names this repository ever sees out of tree-sitter. Go
// keywords such as "type" or "range" are accepted too: token.IsIdentifier
// rejects them, but they are ordinary identifiers in C++.
func isValidIdentifier(name string) bool {
	return token.IsIdentifier(name) || token.IsKeyword(name)
}

// TranslateFunctionName implements the constructor/destructor branch of
// spec.md §4.7's name-resolution rule.
func TranslateFunctionName(isCtor, isDtor bool, name string, paramIndex int) (ir.UnqualifiedIdentifier, bool) {
	switch {
	case isCtor:
		return ir.Constructor(), true
	case isDtor:
		return ir.Destructor(), true
	default:
		return TranslateIdentifier(name, paramIndex)
	}
}
