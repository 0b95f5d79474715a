// Package expr parses the Boolean function attribute values of a Liberty
// library ("A & B", "!(A | B)", "IQ'") into ast operator trees.
//
// The package has its own scanner. It runs over the payload of a single
// name token and maps every position back into the file, so diagnostics
// point inside the quoted string.
//
// Grammar, OR and XOR share one precedence level and associate left:
//
//	expr     := product ( ('+'|'|'|'^') product )*
//	product  := primary2 ( ('&'|'*')? primary2 )*
//	primary2 := '!' primary | primary "'"?
//	primary  := '(' expr ')' | NAME | '0' | '1'
package expr
