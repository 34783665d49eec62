// Package protocol defines the line-based wire protocol: request
// tokenization, the verb set, and the fixed-shape response envelope.
package protocol

import "strings"

// Command is one parsed request: a verb and its ordered positional
// arguments. It is constructed per request and consumed by the dispatcher.
type Command struct {
	Verb string
	Args []string
}

// Parse tokenizes one raw request line. The delimiter is a single space and
// empty tokens between consecutive delimiters are preserved, so doubled
// spaces produce an empty argument. There is no quoting syntax; the only way
// an argument carries a space is the trailing-description convention, which
// the task factory handles by rejoining the remaining tokens.
func Parse(input string) Command {
	tokens := strings.Split(input, " ")
	return Command{Verb: tokens[0], Args: tokens[1:]}
}
