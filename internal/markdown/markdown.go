// Package markdown exports a digest as a Markdown or standalone HTML document.
package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/valpere/vidsum/internal"
)

// Digest renders the four output texts under headings. Each text sits in
// its own fenced block and each request value in a code span, so both are
// reproduced exactly and never read as markup.
func Digest(req internal.ProcessRequest, resp internal.ProcessResponse) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Video digest\n\n")
	fmt.Fprintf(&b, "- Video: %s\n", codeSpan(strings.TrimSpace(req.VideoURL)))
	fmt.Fprintf(&b, "- Transcript language: %s\n", codeSpan(req.TranscriptLang))
	fmt.Fprintf(&b, "- Summary language: %s\n", codeSpan(req.SummaryLang))
	fmt.Fprintf(&b, "- Summary format: %s\n", codeSpan(req.SummaryFormat))

	sections := []struct {
		heading string
		text    string
	}{
		{"Summary (English)", resp.SummaryEN},
		{"Summary (" + language(req.SummaryLang) + ")", resp.SummarySelected},
		{"Transcript (English)", resp.TranscriptEN},
		{"Transcript (" + language(req.TranscriptLang) + ")", resp.TranscriptSelected},
	}
	for _, s := range sections {
		fence := fenceFor(s.text)
		fmt.Fprintf(&b, "\n## %s\n\n%stext\n%s\n%s\n", s.heading, fence, strings.TrimRight(s.text, "\n"), fence)
	}
	return b.Bytes()
}

func language(lang string) string {
	if lang == "" {
		return "selected language"
	}
	return codeSpan(lang)
}

// codeSpan wraps a single-line value in backticks, longer than any backtick
// run inside it. Line breaks become spaces.
func codeSpan(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	if value == "" {
		return ""
	}
	delim := strings.Repeat("`", longestRun(value, '`')+1)
	if strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") {
		return delim + " " + value + " " + delim
	}
	return delim + value + delim
}

// fenceFor returns a backtick fence longer than any backtick run in text.
func fenceFor(text string) string {
	return strings.Repeat("`", max(3, longestRun(text, '`')+1))
}

func longestRun(text string, c rune) int {
	longest, run := 0, 0
	for _, r := range text {
		if r == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:860px;margin:2rem auto;padding:0 1rem;line-height:1.5}` +
	`pre{white-space:pre-wrap;word-break:break-word;background:#f6f6f6;padding:1rem;border-radius:6px}`

// ToHTML renders md as a complete HTML page titled title.
func ToHTML(title string, md []byte) string {
	opts := mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	}
	renderer := mdhtml.NewRenderer(opts)
	ext := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(ext)
	body := markdown.Render(p.Parse(md), renderer)

	return fmt.Sprintf("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n<title>%s</title>\n<style>%s</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), pageStyle, body)
}
