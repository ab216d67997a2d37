// Package arm64 encodes, decodes and disassembles the subset of the AArch64
// A64 instruction set used by the casm toolchain.
//
// Every instruction is a single little-endian 32-bit word. The Make* functions
// build words from already validated fields, Decode classifies a word back into
// an Inst, and Disassemble renders an Inst as assembly text.
package arm64
