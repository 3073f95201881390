package lexer

import (
	"decaf/internal/diag"
)

type Options struct {
	Reporter diag.Reporter // может быть nil, тогда ошибки игнорируем, но продолжаем
}
