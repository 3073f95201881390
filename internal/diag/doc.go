// Package diag defines the diagnostic model shared by the lexer, parser,
// binder and type checker.
//
// Phases never return errors for problems in the checked program. They
// call a Reporter once per violation and keep going; BagReporter collects
// into a bounded Bag that the driver sorts and hands to internal/diagfmt.
//
// Codes are grouped by phase: LEX1xxx, SYN2xxx, SEM3xxx (3000-3099 for
// binding, 3100+ for type checking), IO4xxx and PRJ5xxx. Code.ID is the
// stable form used in golden files and JSON output.
package diag
