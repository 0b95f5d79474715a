// Package parser reads Liberty (.lib) files into an ast.Mgr.
//
// Each statement inside a group is dispatched by name to a Handler taken
// from the schema of the enclosing group kind. Groups without a schema are
// generic and accept any statement. Parsing stops at the first error; the
// diagnostic goes to Options.Reporter and the call reports failure.
package parser
