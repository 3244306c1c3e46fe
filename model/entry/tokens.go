package entry

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	timestampCode = iota
	separatorCode
	identifierCode
)

// Token definitions
var (
	timestampToken  = parsly.NewToken(timestampCode, "Timestamp", newDigitsMatcher())
	separatorToken  = parsly.NewToken(separatorCode, ":", matcher.NewByte(':'))
	identifierToken = parsly.NewToken(identifierCode, "Identifier", newRemainderMatcher())
)

func newDigitsMatcher() parsly.Matcher {
	return &digitsMatcher{}
}

func newRemainderMatcher() parsly.Matcher {
	return &remainderMatcher{}
}

// digitsMatcher matches a run of decimal digits.
type digitsMatcher struct{}

func (m *digitsMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if input[i] < '0' || input[i] > '9' {
			break
		}
		matched++
	}
	return matched
}

// remainderMatcher matches everything up to the end of the line. Identifiers
// may contain any character except the line terminator.
type remainderMatcher struct{}

func (m *remainderMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if input[i] == '\n' || input[i] == '\r' {
			break
		}
		matched++
	}
	return matched
}
