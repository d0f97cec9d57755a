package generate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Deterministic answers for common direct questions. These run on the
// degraded path so a provider outage still yields sensible replies to
// "what time is it" or "what's 2+2".

// Arithmetic only answers an explicit math question. Digits inside an
// emotional message ("panicking 24/7", "working 9-5") must fall
// through to the provider.
var (
	arithmeticQuestion = regexp.MustCompile(`(?:what'?s|what is|calculate|compute|how much is)\s+(\d+)\s*([-+*/x×])\s*(\d+)\s*\??\s*$`)
	arithmeticBare     = regexp.MustCompile(`^(\d+)\s*([-+*/x×])\s*(\d+)\s*(?:=\s*\??|\?)?$`)
)

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything.",
	"I told my plant a joke. It's still processing — photosynthesis takes a while.",
	"Why did the scarecrow win an award? Because he was outstanding in his field.",
}

func (g *Generator) answerDirect(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch {
	case containsAny(normalized, "who are you", "what are you", "what is your name", "what's your name"):
		return "I'm Ora, your voice companion. I'm here to listen and support you.", true
	case containsAny(normalized, "what time is it", "what's the time", "current time"):
		return fmt.Sprintf("It's %s right now.", time.Now().Format("3:04 PM")), true
	case containsAny(normalized, "what day is it", "what's the date", "today's date", "what is the date"):
		return fmt.Sprintf("Today is %s.", time.Now().Format("Monday, January 2")), true
	case containsAny(normalized, "tell me a joke", "make me laugh", "know any jokes"):
		return g.pick(jokes), true
	}

	if answer, ok := answerArithmetic(normalized); ok {
		return answer, true
	}
	return "", false
}

func answerArithmetic(text string) (string, bool) {
	match := arithmeticQuestion.FindStringSubmatch(text)
	if match == nil {
		match = arithmeticBare.FindStringSubmatch(text)
	}
	if match == nil {
		return "", false
	}

	a, errA := strconv.Atoi(match[1])
	b, errB := strconv.Atoi(match[3])
	if errA != nil || errB != nil {
		return "", false
	}

	var result int
	switch match[2] {
	case "+":
		result = a + b
	case "-":
		result = a - b
	case "*", "x", "×":
		result = a * b
	case "/":
		if b == 0 {
			return "Dividing by zero is one problem I can't solve.", true
		}
		if a%b != 0 {
			return fmt.Sprintf("%d divided by %d is %.2f.", a, b, float64(a)/float64(b)), true
		}
		result = a / b
	default:
		return "", false
	}

	return fmt.Sprintf("That's %d.", result), true
}

func containsAny(text string, phrases ...string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
