/*

Package weasel compiles symbolic expressions straight to x86-64 machine code.

Process of compilation

Program Text ->
	sexpr.Read ->
Tree of operator-tagged lists and atoms (sexpr) ->
	Compile (walks the tree with an explicit frame stack) ->
Machine code + immediate pool ->
	NewUnit (mmap, copy, mprotect read+execute) ->
Executable Unit ->
	Invoke ->
Native code calling builtins (+, *, print) and the immediate accessor

Generated code keeps its operand stack on the machine stack. Every value on
it is a word naming a node held by the invocation, so builtins receive and
return plain machine words and all parsing of atom text happens inside the
builtin that consumes it.

*/
package weasel
