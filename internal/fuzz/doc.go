// Package fuzztests houses Go fuzz harnesses that exercise the compilation
// pipeline (source -> lexer -> parser -> generator). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер и
// генератор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
