//go:build !linux

package report

import "io"

func isTerminal(io.Writer) bool {
	return false
}
