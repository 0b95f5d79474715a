// Package fuzztests houses Go fuzz harnesses for the Liberty front end
// (source -> lexer -> parser). Its goal is to smoke test robustness and
// guard against panics, hangs or broken trees on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер, а успешные деревья проверять testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
