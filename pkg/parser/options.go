package parser

// Options controls a single parse call.
type Options struct {
	// Parser forces a specific registered parser. TypeUnknown (the zero
	// value) lets the coordinator select one with fallback.
	Parser Type

	// Strict promotes recoverable issues (unknown keywords, unterminated
	// blocks) from warnings to errors.
	Strict bool

	// LineOffset is the number of input lines preceding content. Parsers
	// that record line numbers add it, so that a chunk of a larger input
	// reports lines of the whole input.
	LineOffset int
}
