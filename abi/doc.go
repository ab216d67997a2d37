// Package abi is the extended opcode contract shared by the assembler and
// the trap dispatcher.
//
// Every extended mnemonic assembles to a single `svc #code` instruction.
// Arguments are passed in x0 upwards, and a result, if any, is returned in
// x0. Registers x26 through x28 belong to the dispatcher and are clobbered
// by every trap.
//
// Service codes are a persisted contract: a binary assembled today must
// run against any later dispatcher, so codes are never renumbered.
package abi
