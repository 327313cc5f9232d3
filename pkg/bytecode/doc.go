// Package bytecode compiles Ezfuck source text into a flat instruction
// sequence and provides a disassembler for it.
//
// Ezfuck is a superset of Brainfuck: every tape operator may carry a numeric
// argument (`+5`, `>2`) or the sentinel `V`, which resolves to the current
// cell's value at execution time. On top of the Brainfuck operators it adds
// multiplication (`*`), division (`/`), absolute cell assignment (`^`),
// absolute pointer assignment (`@`), and an interactive debugger toggle
// (`!`).
//
// The compiler is a single linear pass with no AST. Bracket pairs are
// resolved into two complementary conditional jumps with absolute targets
// using a pending-jump stack: `[` emits a placeholder that is back-patched
// when its `]` arrives. Instruction targets are final once Compile returns;
// the resulting Program is treated as immutable.
//
// Characters outside the operator alphabet are ignored, which is what makes
// plain comment-free Brainfuck valid Ezfuck.
package bytecode
