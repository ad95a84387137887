package mathproblem

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedResponse is returned when the model output does not carry the
// expected PROBLEM/ANSWER markers.
var ErrMalformedResponse = errors.New("malformed problem response")

var (
	problemPattern = regexp.MustCompile(`(?s)PROBLEM:\s*(.+?)ANSWER:`)
	answerPattern  = regexp.MustCompile(`ANSWER:\s*(\d+)`)
)

// ParseProblemResponse extracts the word problem and integer answer from raw
// model output. The problem text is everything between the PROBLEM: and
// ANSWER: markers, trimmed. The answer is the first digit run after ANSWER:.
// A single parse attempt only: any missing marker fails the whole response.
func ParseProblemResponse(raw string) (GeneratedProblem, error) {
	problemMatch := problemPattern.FindStringSubmatch(raw)
	answerMatch := answerPattern.FindStringSubmatch(raw)
	if problemMatch == nil || answerMatch == nil {
		return GeneratedProblem{}, ErrMalformedResponse
	}

	text := strings.TrimSpace(problemMatch[1])
	if text == "" {
		return GeneratedProblem{}, ErrMalformedResponse
	}

	answer, err := strconv.Atoi(answerMatch[1])
	if err != nil {
		return GeneratedProblem{}, ErrMalformedResponse
	}

	return GeneratedProblem{Text: text, Answer: answer}, nil
}
