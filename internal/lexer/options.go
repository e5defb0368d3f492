package lexer

import (
	"fmt"

	"bssc/internal/diag"
	"bssc/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем, но продолжаем
}

func (tz *Tokenizer) report(code diag.Code, sev diag.Severity, at Char, format string, args ...any) {
	if tz.opts.Reporter == nil {
		return
	}
	sp := source.At(tz.file.ID, at.Off)
	tz.opts.Reporter.Report(code, sev, sp, fmt.Sprintf(format, args...), nil)
}

func (tz *Tokenizer) errorf(code diag.Code, at Char, format string, args ...any) {
	tz.report(code, diag.SevError, at, format, args...)
}
