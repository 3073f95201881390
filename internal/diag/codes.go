package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexNewlineInString    Code = 1003
	LexBadNumber          Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnclosedDelimiter  Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynBadAssignTarget    Code = 2008

	// Связывание имён
	SemaInfo             Code = 3000
	SemaDuplicateDecl    Code = 3001
	SemaClassNotFound    Code = 3002
	SemaBadInheritance   Code = 3003
	SemaVoidVariable     Code = 3004
	SemaNoMainClass      Code = 3005
	SemaBadOverride      Code = 3006
	SemaOverrideVariable Code = 3007

	// Проверка типов
	SemaUndeclaredVar        Code = 3100
	SemaNotClassType         Code = 3101
	SemaFieldNotFound        Code = 3102
	SemaNotClassField        Code = 3103
	SemaNotClassMethod       Code = 3104
	SemaFieldNotAccessible   Code = 3105
	SemaStaticRefInstance    Code = 3106
	SemaInstanceViaClass     Code = 3107
	SemaThisInStatic         Code = 3108
	SemaBadUnaryOperand      Code = 3109
	SemaBadBinaryOperands    Code = 3110
	SemaBadAssignment        Code = 3111
	SemaBadReturnType        Code = 3112
	SemaBadTestExpr          Code = 3113
	SemaBreakOutsideLoop     Code = 3114
	SemaBadArrayElement      Code = 3115
	SemaBadArrayIndex        Code = 3116
	SemaNotArray             Code = 3117
	SemaSubscriptNotInt      Code = 3118
	SemaBadNewArrayLength    Code = 3119
	SemaBadArgCount          Code = 3120
	SemaBadArgType           Code = 3121
	SemaBadPrintArg          Code = 3122
	SemaBadLengthArgs        Code = 3123
	SemaBadLengthReceiver    Code = 3124
	SemaBadScopyArg          Code = 3125
	SemaBadScopySource       Code = 3126
	SemaBadForeachType       Code = 3127
	SemaBadArrayOperand      Code = 3128
	SemaBadDefaultValue      Code = 3129

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Проект
	ProjManifestInvalid Code = 5001
)

var (
	codeDescription = map[Code]string{
		UnknownCode: "Unknown error",

		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexNewlineInString:    "Newline in string literal",
		LexBadNumber:          "Malformed number literal",

		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectSemicolon:    "Missing semicolon",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectType:         "Expected type",
		SynExpectExpression:   "Expected expression",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynUnexpectedTopLevel: "Unexpected top-level declaration",
		SynBadAssignTarget:    "Invalid assignment target",

		SemaInfo:             "Semantic information",
		SemaDuplicateDecl:    "Duplicate declaration",
		SemaClassNotFound:    "Class not found",
		SemaBadInheritance:   "Illegal class inheritance",
		SemaVoidVariable:     "Variable of void type",
		SemaNoMainClass:      "No Main class with static main()",
		SemaBadOverride:      "Incompatible method override",
		SemaOverrideVariable: "Field overrides inherited member",

		SemaUndeclaredVar:      "Undeclared variable",
		SemaNotClassType:       "Class type required",
		SemaFieldNotFound:      "Member not found",
		SemaNotClassField:      "Not a class field",
		SemaNotClassMethod:     "Not a class method",
		SemaFieldNotAccessible: "Field not accessible",
		SemaStaticRefInstance:  "Static context references instance member",
		SemaInstanceViaClass:   "Instance method called through class name",
		SemaThisInStatic:       "'this' in static function",
		SemaBadUnaryOperand:    "Incompatible unary operand",
		SemaBadBinaryOperands:  "Incompatible binary operands",
		SemaBadAssignment:      "Incompatible assignment",
		SemaBadReturnType:      "Incompatible return type",
		SemaBadTestExpr:        "Test expression must be bool",
		SemaBreakOutsideLoop:   "'break' outside of loop",
		SemaBadArrayElement:    "Bad array element type",
		SemaBadArrayIndex:      "Array index must be int",
		SemaNotArray:           "Array type required",
		SemaSubscriptNotInt:    "Array subscript must be int",
		SemaBadNewArrayLength:  "New array length must be int",
		SemaBadArgCount:        "Wrong number of arguments",
		SemaBadArgType:         "Incompatible argument type",
		SemaBadPrintArg:        "Incompatible print argument",
		SemaBadLengthArgs:      "length() takes no arguments",
		SemaBadLengthReceiver:  "length() on non-array",
		SemaBadScopyArg:        "scopy argument must be a class",
		SemaBadScopySource:     "scopy source type mismatch",
		SemaBadForeachType:     "Foreach element type mismatch",
		SemaBadArrayOperand:    "Array operand required",
		SemaBadDefaultValue:    "Default value type mismatch",

		IOLoadFileError: "Cannot load file",

		ProjManifestInvalid: "Invalid decaf.toml",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
