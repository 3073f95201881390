// Package ast holds the arena-allocated syntax tree of a Decaf program.
//
// Every node kind lives in a typed arena and is addressed by a dense
// uint32 ID; 0 is the "absent" sentinel for each ID type. Nodes carry
// only syntax. Types and resolved symbols are recorded by later passes
// in side tables keyed by these IDs, with one exception: the receiver
// slots of CallData and IdentData may be rewritten by the type checker.
package ast
