// SPDX-License-Identifier: MIT

// Package command builds the invcache command line. The single subcommand,
// inverse, decodes a matrix file, resolves its inverse through a
// cachesolve.CachedMatrix and prints the result.
package command
