package review

import (
	"fmt"
	"regexp"
	"strings"
)

// Detector is a single deterministic check over raw diff text. Detectors are
// stateless, perform no I/O, and must return a (possibly empty) issue list
// for any input string, including empty input.
type Detector interface {
	Name() string
	Detect(diff string) []Issue
}

// RuleConfig holds tunable thresholds for the rule engine.
type RuleConfig struct {
	// SizeThreshold is the changed-line count above which a PR is flagged.
	SizeThreshold int
}

// DefaultRuleConfig returns the standard thresholds.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{SizeThreshold: 500}
}

// RuleEngine runs an ordered registry of detectors and concatenates their
// results, preserving registration order and per-detector emission order.
type RuleEngine struct {
	detectors []Detector
}

// NewRuleEngine creates a rule engine with the standard detector registry.
func NewRuleEngine(cfg RuleConfig) *RuleEngine {
	if cfg.SizeThreshold <= 0 {
		cfg.SizeThreshold = DefaultRuleConfig().SizeThreshold
	}
	return &RuleEngine{
		detectors: []Detector{
			&sizeDetector{threshold: cfg.SizeThreshold},
			&securityDetector{},
			&importDetector{},
			&complexityDetector{},
		},
	}
}

// Register appends a detector to the end of the registry.
func (e *RuleEngine) Register(d Detector) {
	e.detectors = append(e.detectors, d)
}

// Run evaluates every registered detector against the diff.
func (e *RuleEngine) Run(diff string) []Issue {
	issues := []Issue{}
	for _, d := range e.detectors {
		issues = append(issues, d.Detect(diff)...)
	}
	return issues
}

// changedLines counts diff lines beginning with + or -, excluding the
// +++/--- file header lines.
func changedLines(diff string) int {
	n := 0
	for _, line := range strings.Split(diff, "\n") {
		if isChangeLine(line) {
			n++
		}
	}
	return n
}

func isChangeLine(line string) bool {
	if strings.HasPrefix(line, "+") {
		return !strings.HasPrefix(line, "+++")
	}
	if strings.HasPrefix(line, "-") {
		return !strings.HasPrefix(line, "---")
	}
	return false
}

// addedLines returns diff lines beginning with + excluding +++ headers,
// prefix included.
func addedLines(diff string) []string {
	var lines []string
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			lines = append(lines, line)
		}
	}
	return lines
}

// sizeDetector flags PRs whose changed-line count exceeds the threshold.
type sizeDetector struct {
	threshold int
}

func (d *sizeDetector) Name() string { return "pr_size" }

func (d *sizeDetector) Detect(diff string) []Issue {
	n := changedLines(diff)
	if n <= d.threshold {
		return nil
	}
	return []Issue{{
		Kind:       KindPRSize,
		Severity:   SeverityMedium,
		Message:    fmt.Sprintf("PR has %d lines changed. Consider splitting for easier review.", n),
		Confidence: 1.0,
		Action:     ActionReview,
	}}
}

// securityPatterns are searched anywhere in the diff text. Each pattern fires
// at most once regardless of how many times it matches. Order is fixed so
// results are deterministic.
var securityPatterns = []struct {
	re       *regexp.Regexp
	message  string
	severity Severity
}{
	{regexp.MustCompile(`(?i)\beval\s*\(`), "Use of eval() detected - security risk", SeverityHigh},
	{regexp.MustCompile(`(?i)\bexec\s*\(`), "Use of exec() detected - security risk", SeverityHigh},
	{regexp.MustCompile(`(?i)hashlib\.md5`), "MD5 is broken - use SHA256 or bcrypt", SeverityHigh},
	{regexp.MustCompile(`(?i)\bpickle\.loads?\(`), "pickle.load() is unsafe - use safer alternatives", SeverityMedium},
	{regexp.MustCompile(`(?i)password\s*=\s*["'][^"']+["']`), "Possible hardcoded password", SeverityHigh},
	{regexp.MustCompile(`(?i)api[_-]?key\s*=\s*["'][^"']+["']`), "Possible hardcoded API key", SeverityHigh},
	{regexp.MustCompile(`(?i)\bsecret\s*=\s*["'][^"']+["']`), "Possible hardcoded secret", SeverityHigh},
	// SECRET_KEY is matched case-sensitively: the target is the conventional
	// upper-case Django/Flask settings constant.
	{regexp.MustCompile(`SECRET_KEY\s*=\s*["']`), "Hardcoded secret key detected", SeverityHigh},
}

// securityDetector flags common security anti-patterns.
type securityDetector struct{}

func (d *securityDetector) Name() string { return "security_patterns" }

func (d *securityDetector) Detect(diff string) []Issue {
	var issues []Issue
	for _, p := range securityPatterns {
		if p.re.MatchString(diff) {
			issues = append(issues, Issue{
				Kind:       KindSecurity,
				Severity:   p.severity,
				Message:    p.message,
				Confidence: 1.0,
				Action:     ActionReview,
			})
		}
	}
	return issues
}

var starImportRe = regexp.MustCompile(`from\s+\S+\s+import\s+\*`)

// importDetector flags wildcard imports.
type importDetector struct{}

func (d *importDetector) Name() string { return "import_quality" }

func (d *importDetector) Detect(diff string) []Issue {
	if !starImportRe.MatchString(diff) {
		return nil
	}
	return []Issue{{
		Kind:       KindStyle,
		Severity:   SeverityLow,
		Message:    "Star import (import *) detected. Consider explicit imports.",
		Confidence: 0.9,
		Action:     ActionReview,
	}}
}

// complexityAddedLineLimit is the added-line count above which a diff is
// checked for single-function bloat.
const complexityAddedLineLimit = 100

var functionDefRe = regexp.MustCompile(`^\+\s*def\s+\w+\s*\(`)

// complexityDetector flags large diffs whose additions open exactly one
// function definition.
//
// Known limitation: when the added lines open more than one function, no
// issue fires even though the diff is just as large. The check targets
// single-function bloat specifically; multi-function large diffs are already
// covered by the size detector.
type complexityDetector struct{}

func (d *complexityDetector) Name() string { return "code_complexity" }

func (d *complexityDetector) Detect(diff string) []Issue {
	added := addedLines(diff)
	if len(added) <= complexityAddedLineLimit {
		return nil
	}
	defs := 0
	for _, line := range added {
		if functionDefRe.MatchString(line) {
			defs++
		}
	}
	if defs != 1 {
		return nil
	}
	return []Issue{{
		Kind:       KindComplexity,
		Severity:   SeverityMedium,
		Message:    "Large function detected (>100 lines). Consider breaking into smaller functions.",
		Confidence: 0.8,
		Action:     ActionReview,
	}}
}
