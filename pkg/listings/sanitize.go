package listings

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"property-dashboard/internal/models"
	"property-dashboard/pkg/metrics"
)

var nonFiniteTokens = []string{
	"nan", "+nan", "-nan",
	"infinity", "+infinity", "-infinity",
	"inf", "+inf", "-inf",
}

// Sanitize rewrites every bare non-finite numeric token (NaN, Infinity,
// -Infinity and their variants) to null, at any nesting depth, without
// parsing the document. String literals are copied untouched. It returns the
// rewritten body and the number of tokens replaced.
func Sanitize(body []byte) ([]byte, int) {
	out := make([]byte, 0, len(body))
	replaced := 0
	inString, escaped := false, false

	for i := 0; i < len(body); {
		c := body[i]
		if inString {
			out = append(out, c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			i++
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			i++
			continue
		}
		if isBareByte(c) {
			j := i
			for j < len(body) && isBareByte(body[j]) {
				j++
			}
			token := body[i:j]
			if isNonFinite(token) {
				out = append(out, "null"...)
				replaced++
			} else {
				out = append(out, token...)
			}
			i = j
			continue
		}
		out = append(out, c)
		i++
	}
	return out, replaced
}

// bytes that can appear in an unquoted JSON value (numbers, literals)
func isBareByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '+' || c == '-' || c == '.'
}

func isNonFinite(token []byte) bool {
	if len(token) < 3 || len(token) > len("-infinity") {
		return false
	}
	s := string(token)
	for _, candidate := range nonFiniteTokens {
		if strings.EqualFold(s, candidate) {
			return true
		}
	}
	return false
}

// Decode sanitizes a provider body and parses it. A body without a results
// key decodes to an empty result set. The sanitized body is kept as the
// response Document.
func Decode(body []byte) (*models.ListingsResponse, error) {
	sanitized, replaced := Sanitize(body)
	if replaced > 0 {
		metrics.SanitizedTokensTotal.Add(float64(replaced))
	}

	var resp models.ListingsResponse
	if err := json.Unmarshal(sanitized, &resp); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if resp.Results == nil {
		resp.Results = []models.RawListing{}
	}
	if doc := bytes.TrimSpace(sanitized); len(doc) > 0 && doc[0] == '{' {
		resp.Document = doc
	}
	return &resp, nil
}
