package cms

import (
	"log"
	"strings"
)

// Parser turns raw CMS report text into a Record by running the ordered
// heuristic rule table. Partial extraction is the expected common case;
// unmatched attributes simply stay absent and parsing never fails.
type Parser struct {
	debug bool
}

// NewParser creates a new CMS report parser.
func NewParser(debug bool) *Parser {
	return &Parser{debug: debug}
}

// Parse extracts a Record from report text. The full source text is
// retained verbatim on the record for diagnostics.
func (p *Parser) Parse(text string) *Record {
	if p.debug {
		log.Printf("Parsing CMS report text, %d characters", len(text))
	}

	rec := &Record{RawText: text}

	for _, r := range extractionRules {
		value := p.apply(r, text)
		if value == "" {
			continue
		}
		rec.set(r.attr, value)
		if p.debug {
			log.Printf("Extracted %s = %q", r.attr, value)
		}
	}

	// The turbine shares the DDAU's address on single-unit reports.
	rec.TurbineIP = rec.IPAddress

	return rec
}

// apply runs one rule's matchers in priority order, then its fallback.
func (p *Parser) apply(r rule, text string) string {
	for _, m := range r.matchers {
		var value string
		if m.all {
			value = joinAll(m.re.FindAllStringSubmatch(text, -1))
		} else {
			value = firstCapture(m.re.FindStringSubmatch(text))
		}
		if value == "" {
			continue
		}
		if r.validate != nil && !r.validate(value) {
			if p.debug {
				log.Printf("Discarded %s candidate %q: shape mismatch", r.attr, value)
			}
			continue
		}
		return value
	}

	if r.fallback != nil {
		value := firstCapture(r.fallback.FindStringSubmatch(text))
		if value != "" && (r.validate == nil || r.validate(value)) {
			return value
		}
	}

	return ""
}

// firstCapture returns the trimmed first capture group of a match.
func firstCapture(match []string) string {
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// joinAll joins every non-empty trimmed capture with ", ".
func joinAll(matches [][]string) string {
	var values []string
	for _, match := range matches {
		if v := firstCapture(match); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}
