package types

// Diagnostic codes emitted by the lexer, parser, generator and ECMA check.
// Centralizing these prevents silent breakage from typos in string literals.

// Lexer diagnostic codes.
const (
	DiagBraceLiteral      = "brace-literal"
	DiagIdentityEscape    = "identity-escape"
	DiagTrailingBackslash = "trailing-backslash"
	DiagBadGroupPrefix    = "bad-group-prefix"
	DiagBadGroupName      = "bad-group-name"
	DiagBadEscape         = "bad-escape"
	DiagInvalidUTF8       = "invalid-utf8"
)

// Parser diagnostic codes.
const (
	DiagUnbalancedParen      = "unbalanced-paren"
	DiagUnterminatedGroup    = "unterminated-group"
	DiagUnterminatedClass    = "unterminated-class"
	DiagNestingTooDeep       = "nesting-too-deep"
	DiagNothingToRepeat      = "nothing-to-repeat"
	DiagQuantifierOrder      = "quantifier-order"
	DiagDuplicateGroupName   = "duplicate-group-name"
	DiagBackreferenceUnknown = "backreference-unknown"
	DiagClassRangeOrder      = "class-range-order"
	DiagClassOverlap         = "class-overlap"
)

// Unsupported-construct codes. These never abort; the explanation is
// still produced and carries a caveat.
const (
	DiagLookbehindAlternation  = "lookbehind-alternation"
	DiagLookbehindNegatedClass = "lookbehind-negated-class"
	DiagLookbehindQuantified   = "lookbehind-quantified"
)

// ECMA cross-check codes.
const (
	DiagECMARejected        = "ecma-rejected"
	DiagECMACaptureMismatch = "ecma-capture-mismatch"
)

// Diagnostic categories.
const (
	CategorySyntax      = "syntax"
	CategoryUnsupported = "unsupported-construct"
	CategoryDegraded    = "degraded"
	CategoryECMA        = "ecma"
)

// DiagCodeInfo describes a diagnostic code, its phase and category.
type DiagCodeInfo struct {
	Code     string
	Phase    string
	Category string
}

// AllDiagnosticCodes returns all known diagnostic codes grouped by phase.
func AllDiagnosticCodes() []DiagCodeInfo {
	return []DiagCodeInfo{
		// Lexer
		{Code: DiagBraceLiteral, Phase: "lexer", Category: CategoryDegraded},
		{Code: DiagIdentityEscape, Phase: "lexer", Category: CategorySyntax},
		{Code: DiagTrailingBackslash, Phase: "lexer", Category: CategorySyntax},
		{Code: DiagBadGroupPrefix, Phase: "lexer", Category: CategorySyntax},
		{Code: DiagBadGroupName, Phase: "lexer", Category: CategorySyntax},
		{Code: DiagBadEscape, Phase: "lexer", Category: CategorySyntax},
		{Code: DiagInvalidUTF8, Phase: "lexer", Category: CategorySyntax},
		// Parser
		{Code: DiagUnbalancedParen, Phase: "parser", Category: CategorySyntax},
		{Code: DiagUnterminatedGroup, Phase: "parser", Category: CategorySyntax},
		{Code: DiagUnterminatedClass, Phase: "parser", Category: CategorySyntax},
		{Code: DiagNestingTooDeep, Phase: "parser", Category: CategorySyntax},
		{Code: DiagNothingToRepeat, Phase: "parser", Category: CategoryDegraded},
		{Code: DiagQuantifierOrder, Phase: "parser", Category: CategoryDegraded},
		{Code: DiagDuplicateGroupName, Phase: "parser", Category: CategorySyntax},
		{Code: DiagBackreferenceUnknown, Phase: "parser", Category: CategorySyntax},
		{Code: DiagClassRangeOrder, Phase: "parser", Category: CategorySyntax},
		{Code: DiagClassOverlap, Phase: "parser", Category: CategorySyntax},
		{Code: DiagLookbehindAlternation, Phase: "parser", Category: CategoryUnsupported},
		{Code: DiagLookbehindNegatedClass, Phase: "parser", Category: CategoryUnsupported},
		{Code: DiagLookbehindQuantified, Phase: "parser", Category: CategoryUnsupported},
		// ECMA
		{Code: DiagECMARejected, Phase: "ecma", Category: CategoryECMA},
		{Code: DiagECMACaptureMismatch, Phase: "ecma", Category: CategoryECMA},
	}
}

// CategoryOf returns the category of a diagnostic code, or CategorySyntax
// for unknown codes.
func CategoryOf(code string) string {
	for _, info := range AllDiagnosticCodes() {
		if info.Code == code {
			return info.Category
		}
	}
	return CategorySyntax
}
