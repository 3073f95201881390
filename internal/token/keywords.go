package token

var keywords = map[string]Kind{
	"class":       KwClass,
	"extends":     KwExtends,
	"static":      KwStatic,
	"void":        KwVoid,
	"int":         KwInt,
	"bool":        KwBool,
	"string":      KwString,
	"new":         KwNew,
	"this":        KwThis,
	"null":        KwNull,
	"true":        KwTrue,
	"false":       KwFalse,
	"if":          KwIf,
	"else":        KwElse,
	"while":       KwWhile,
	"for":         KwFor,
	"return":      KwReturn,
	"break":       KwBreak,
	"Print":       KwPrint,
	"ReadInteger": KwReadInteger,
	"ReadLine":    KwReadLine,
	"instanceof":  KwInstanceof,
	"foreach":     KwForeach,
	"in":          KwIn,
	"var":         KwVar,
	"default":     KwDefault,
	"scopy":       KwScopy,
}

var keywordText = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, k := range keywords {
		m[k] = text
	}
	return m
}()

// LookupKeyword is case sensitive: `Print` is a keyword, `print` is not.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
