package mathproblem

import (
	"errors"
	"testing"
)

func TestParseProblemResponse(t *testing.T) {
	raw := "PROBLEM: Sam has 120 apples. He sells 33 of them.\nHow many apples does Sam have left?\nANSWER: 87"

	parsed, err := ParseProblemResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Answer != 87 {
		t.Fatalf("expected answer 87, got %d", parsed.Answer)
	}
	if parsed.Text != "Sam has 120 apples. He sells 33 of them.\nHow many apples does Sam have left?" {
		t.Fatalf("unexpected problem text: %q", parsed.Text)
	}
}

func TestParseProblemResponseSurroundingNoise(t *testing.T) {
	raw := "Sure! Here is your problem.\nPROBLEM: A bag holds 12 marbles. Tom buys 3 bags. How many marbles does he have?\nANSWER: 36\nHave fun!"

	parsed, err := ParseProblemResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Answer != 36 {
		t.Fatalf("expected answer 36, got %d", parsed.Answer)
	}
}

func TestParseProblemResponseMissingMarkers(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no markers", "a word problem with no structure at all"},
		{"missing answer", "PROBLEM: something ANSWER: none"},
		{"missing problem", "ANSWER: 42"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProblemResponse(tc.raw)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestParseProblemResponseFirstDigitRun(t *testing.T) {
	raw := "PROBLEM: What is 40 + 7?\nANSWER: 47 (forty-seven)"

	parsed, err := ParseProblemResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Answer != 47 {
		t.Fatalf("expected answer 47, got %d", parsed.Answer)
	}
}
