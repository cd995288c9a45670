package prompts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Nydauron/cyclingportal/portal"
)

const StartTimeLayout = "2006-01-02 15:04"

var (
	input  *bufio.Reader = bufio.NewReader(os.Stdin)
	output io.Writer     = os.Stderr
)

// SetIO redirects where prompts read answers from and write questions to.
func SetIO(in io.Reader, out io.Writer) {
	input = bufio.NewReader(in)
	output = out
}

// Prompt prints the message and returns the next input line. ok is false once the
// input is exhausted.
func Prompt(message string) (string, bool) {
	fmt.Fprint(output, message)
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// ask repeats the question until parse accepts the answer.
func ask[T any](message string, parse func(string) (T, bool)) (T, error) {
	for {
		answer, ok := Prompt(message)
		if !ok {
			var zero T
			return zero, fmt.Errorf("no answer to %q: %w", strings.TrimSpace(message), io.ErrUnexpectedEOF)
		}
		if v, ok := parse(strings.TrimSpace(answer)); ok {
			return v, nil
		}
	}
}

func StageTypePrompt() (portal.StageType, error) {
	return ask("Stage type (flat, mm, hm, tt): ", TranslateStageType)
}

func SegmentCategoryPrompt() (portal.SegmentCategory, error) {
	return ask("Climb category (4, 3, 2, 1, hc): ", func(s string) (portal.SegmentCategory, bool) {
		c, ok := TranslateSegmentCategory(s)
		return c, ok && c.IsClimb()
	})
}

func NamePrompt(what string) (string, error) {
	return ask(fmt.Sprintf("%s name: ", what), func(s string) (string, bool) {
		return s, s != ""
	})
}

func DescriptionPrompt(what string) (string, error) {
	return ask(fmt.Sprintf("%s description: ", what), func(s string) (string, bool) {
		return s, true
	})
}

func LengthPrompt(what string) (float64, error) {
	return ask(fmt.Sprintf("%s length (km): ", what), func(s string) (float64, bool) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	})
}

func StartTimePrompt() (time.Time, error) {
	return ask("Stage start ("+StartTimeLayout+"): ", func(s string) (time.Time, bool) {
		t, err := time.Parse(StartTimeLayout, s)
		return t, err == nil
	})
}

func YearOfBirthPrompt() (int, error) {
	return ask("Year of birth: ", func(s string) (int, bool) {
		y, err := strconv.Atoi(s)
		return y, err == nil
	})
}
