// Package cpu implements the AArch64 subset processor that runs assembled
// images.
//
// The processor has thirty one 64-bit general purpose registers (x0-x30), a
// stack pointer, a program counter and the NZCV condition flags. It executes
// every instruction class the assembler emits, against a flat little endian
// memory. Supervisor calls are not serviced here: they stop execution with an
// ErrTrap, and the caller dispatches the request and resumes.
package cpu
