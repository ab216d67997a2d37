// Package asm assembles CASM source into AArch64 images.
//
// Source is lexed on demand, parsed into a fixed size node arena, and then
// generated in two passes: pass 1 assigns addresses to labels, pass 2
// encodes every instruction into a single 32-bit word. A pure peephole
// pass may replace a redundant instruction with a NOP, but never changes
// the size of the image.
//
// Mnemonics that name an extended service (see package abi) assemble to an
// svc with the service code.
//
// Any failure aborts the assembly with a single *ErrAssembly, whose
// ErrorKind is recoverable with errors.Is.
package asm
