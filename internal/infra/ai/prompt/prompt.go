package prompt

import (
	"fmt"
	"unicode/utf8"
)

// maxPayloadBytes caps report payloads embedded in prompts. The completion
// provider has an input-size limit; oversized raw reports are cut with a
// visible marker instead of failing on the provider side.
const maxPayloadBytes = 16 * 1024

// System is the fixed system message for every completion.
func System() string {
	return "You are an SEO consultant."
}

// Analyze builds the per-category prompt. Error payloads are embedded
// verbatim so the model can comment on fetch failures.
func Analyze(category, payload string) string {
	return fmt.Sprintf(`You are an SEO expert. Analyze this %s report from Google Search Console.
Provide:
1. Root causes
2. Actionable SEO solutions (step by step)
3. Priority level (High / Medium / Low with reasoning)
4. Best practices for long-term fix

Report Data:
%s`, category, Truncate(payload))
}

// Summary builds the executive-summary prompt over the full results mapping.
func Summary(resultsPayload string) string {
	return fmt.Sprintf(`Create an SEO Executive Summary for this site audit.
Summarize in 3 parts:
1. Overall SEO Health (positive + negative highlights)
2. Key Priority Issues
3. Recommended Roadmap (short term vs long term)

Results:
%s`, Truncate(resultsPayload))
}

// Truncate enforces the payload cap, appending a marker stating how many
// bytes were dropped. The cut never splits a UTF-8 sequence.
func Truncate(payload string) string {
	if len(payload) <= maxPayloadBytes {
		return payload
	}
	cut := payload[:maxPayloadBytes]
	for len(cut) > 0 {
		r, _ := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return fmt.Sprintf("%s ...[truncated %d bytes]", cut, len(payload)-len(cut))
}
