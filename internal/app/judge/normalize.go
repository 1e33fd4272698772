package judge

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
)

// NormalizedIO is the exact text fed to the execution engine as stdin and
// compared against program output.
type NormalizedIO struct {
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

// A normalizeRule turns one question's stored raw text into line-oriented
// stdin/stdout. Each function reports whether it applied; on false the raw
// text passes through untouched, so malformed stored data degrades to a
// literal run instead of blocking the request.
type normalizeRule struct {
	stdin    func(raw string) (string, bool)
	expected func(raw string) (string, bool)
}

// Registry of per-question raw→runtime encodings, keyed by the slugged
// question title. Adding a question format is a pure data addition here.
var normalizeRules = map[string]normalizeRule{
	"two-sum":                 {stdin: twoSumStdin, expected: twoSumExpected},
	"number-of-perfect-pairs": {stdin: perfectPairsStdin, expected: perfectPairsExpected},
}

// Normalize applies the title's registered rule to the stored input/expected
// pair. Unknown titles get the identity transformation. It never fails.
func Normalize(title, rawInput, rawExpected string) NormalizedIO {
	io := NormalizedIO{Stdin: rawInput, ExpectedOutput: rawExpected}
	rule, ok := normalizeRules[slug.Make(title)]
	if !ok {
		return io
	}
	if s, applied := rule.stdin(rawInput); applied {
		io.Stdin = s
	}
	if s, applied := rule.expected(rawExpected); applied {
		io.ExpectedOutput = s
	}
	return io
}

var (
	bracketListRe  = regexp.MustCompile(`\[(.*?)\]`)
	targetAssignRe = regexp.MustCompile(`(?i)target\s*=\s*(-?\d+)`)
	trailingIntRe  = regexp.MustCompile(`\s(-?\d+)\s*$`)
	intPairCommaRe = regexp.MustCompile(`^-?\d+\s*,\s*-?\d+$`)
	intPairSpaceRe = regexp.MustCompile(`^-?\d+\s+-?\d+$`)
	intLiteralRe   = regexp.MustCompile(`^-?\d+$`)
	pairSplitRe    = regexp.MustCompile(`\s*,\s*|\s+`)
)

// twoSumStdin accepts, in order of preference:
//   - JSON {"nums":[...],"target":n}, optionally nested under "input"
//   - free text like "nums = [2,7,11,15], target = 9"
//   - whitespace-separated numbers where the last one is the target
//
// and emits "<nums joined by space>\n<target>\n".
func twoSumStdin(raw string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil {
		obj, _ := doc.(map[string]interface{})
		if inner, ok := obj["input"].(map[string]interface{}); ok {
			obj = inner
		}
		nums, okNums := numberSlice(obj["nums"])
		target, okTarget := obj["target"].(float64)
		if okNums && len(nums) > 0 && okTarget {
			return joinNumbers(nums) + "\n" + formatNumber(target) + "\n", true
		}
		return "", false
	}

	if m := bracketListRe.FindStringSubmatch(raw); m != nil {
		nums := parseNumberList(m[1])
		var target string
		if tm := targetAssignRe.FindStringSubmatch(raw); tm != nil {
			target = tm[1]
		} else if tm := trailingIntRe.FindStringSubmatch(raw); tm != nil {
			target = tm[1]
		}
		if len(nums) > 0 && target != "" {
			return joinNumbers(nums) + "\n" + target + "\n", true
		}
		return "", false
	}

	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) >= 2 {
		nums := make([]float64, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return "", false
			}
			nums = append(nums, n)
		}
		last := len(nums) - 1
		return joinNumbers(nums[:last]) + "\n" + formatNumber(nums[last]) + "\n", true
	}
	return "", false
}

// twoSumExpected accepts a JSON pair ([i,j] or {"expected_output":[i,j]}),
// "i,j", "[i, j]" or bare "i j", and emits "<i> <j>\n".
func twoSumExpected(raw string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil {
		arr, ok := numberSlice(doc)
		if !ok {
			if obj, isObj := doc.(map[string]interface{}); isObj {
				arr, ok = numberSlice(obj["expected_output"])
			}
		}
		if ok && len(arr) == 2 {
			return formatNumber(arr[0]) + " " + formatNumber(arr[1]) + "\n", true
		}
		return "", false
	}

	trimmed := strings.TrimSpace(raw)
	if intPairCommaRe.MatchString(trimmed) {
		return numberPair(trimmed)
	}
	if m := bracketListRe.FindStringSubmatch(trimmed); m != nil {
		return numberPair(m[1])
	}
	if intPairSpaceRe.MatchString(trimmed) {
		return trimmed + "\n", true
	}
	return "", false
}

// perfectPairsStdin accepts JSON {"nums":[...]} (optionally nested under
// "input") or a bracketed list in free text, emitting the nums on one line.
func perfectPairsStdin(raw string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil {
		obj, _ := doc.(map[string]interface{})
		if inner, ok := obj["input"].(map[string]interface{}); ok {
			obj = inner
		}
		if nums, ok := numberSlice(obj["nums"]); ok && len(nums) > 0 {
			return joinNumbers(nums) + "\n", true
		}
		return "", false
	}
	if m := bracketListRe.FindStringSubmatch(raw); m != nil {
		if nums := parseNumberList(m[1]); len(nums) > 0 {
			return joinNumbers(nums) + "\n", true
		}
	}
	return "", false
}

// perfectPairsExpected accepts a JSON number or a bare integer literal.
func perfectPairsExpected(raw string) (string, bool) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err == nil {
		if n, ok := doc.(float64); ok {
			return formatNumber(n) + "\n", true
		}
		return "", false
	}
	if trimmed := strings.TrimSpace(raw); intLiteralRe.MatchString(trimmed) {
		return trimmed + "\n", true
	}
	return "", false
}

func numberSlice(v interface{}) ([]float64, bool) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	nums := make([]float64, 0, len(arr))
	for _, e := range arr {
		n, isNum := e.(float64)
		if !isNum {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

// parseNumberList splits comma-separated text, skipping parts that are not
// numbers.
func parseNumberList(s string) []float64 {
	var nums []float64
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// numberPair extracts exactly two numbers from comma/space separated text.
func numberPair(txt string) (string, bool) {
	txt = strings.NewReplacer("[", "", "]", "").Replace(txt)
	var nums []float64
	for _, part := range pairSplitRe.Split(strings.TrimSpace(txt), -1) {
		if part == "" {
			continue
		}
		if n, err := strconv.ParseFloat(part, 64); err == nil {
			nums = append(nums, n)
		}
	}
	if len(nums) == 2 {
		return formatNumber(nums[0]) + " " + formatNumber(nums[1]) + "\n", true
	}
	return "", false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinNumbers(nums []float64) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = formatNumber(n)
	}
	return strings.Join(parts, " ")
}
