package qti

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/ksandoe/passport-import/internal/exam"
)

// Parse decodes one questestinterop document and maps every item it can
// find to a Question. mediaURLs maps archive-relative media names to their
// uploaded URLs; a prompt image that misses the map degrades to no image.
//
// Items are never dropped: an item with no recognizable interaction is
// still emitted as short-answer with whatever was recoverable, and the
// backend is left to reject it.
func Parse(data []byte, mediaURLs map[string]string) ([]exam.Question, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var doc questestinterop
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode assessment document: %w", err)
	}

	items := collectItems(doc)
	out := make([]exam.Question, 0, len(items))
	for _, it := range items {
		out = append(out, buildQuestion(it, mediaURLs))
	}
	return out, nil
}

// collectItems walks assessment>section>item; when that yields nothing it
// falls back to items directly under the root, which some QTI flavors use.
func collectItems(doc questestinterop) []item {
	var out []item
	if doc.Assessment != nil {
		out = append(out, sectionItems(doc.Assessment.Sections)...)
	}
	if len(out) == 0 {
		out = append(out, doc.Items...)
	}
	return out
}

func sectionItems(sections []section) []item {
	var out []item
	for _, s := range sections {
		out = append(out, s.Items...)
		out = append(out, sectionItems(s.Sections)...)
	}
	return out
}

func buildQuestion(it item, mediaURLs map[string]string) exam.Question {
	prompt := it.Presentation.promptText()
	labels := it.Presentation.responseLabels()

	q := exam.Question{Type: exam.TypeShortAnswer}
	if len(labels) > 0 {
		q.Type = exam.TypeMultipleChoice
		choices := make([]string, len(labels))
		for i, l := range labels {
			choices[i] = l.Material.text()
		}
		idents := resolveIdents(labels, it.metadataAnswerIDs())
		if v, ok := firstConditionValue(it.ResProcessing); ok {
			if idx := indexOfIdent(idents, v); idx >= 0 {
				q.CorrectAnswer = choices[idx]
			}
			// no match: leave the key empty rather than guess
		}
		q.Choices = choices
	} else if v, ok := firstConditionValue(it.ResProcessing); ok {
		q.CorrectAnswer = v
	}

	if src, ok := imageSrc(prompt); ok {
		q.ImageURL = mediaURLs[NormalizeImageName(src)]
	}

	q.Prompt = Sanitize(prompt)
	for i := range q.Choices {
		q.Choices[i] = Sanitize(q.Choices[i])
	}
	q.CorrectAnswer = Sanitize(q.CorrectAnswer)
	return q
}

// firstConditionValue returns the comparison value of the first scoring
// condition that has a varequal test. Only the first match is used; the
// source format's semantics for multiple matching conditions are ambiguous
// and ties are deliberately not resolved.
func firstConditionValue(rp *resProcessing) (string, bool) {
	if rp == nil {
		return "", false
	}
	for _, cond := range rp.Conditions {
		for _, ve := range cond.ConditionVar.VarEqual {
			if v := strings.TrimSpace(ve.Value); v != "" {
				return v, true
			}
			if v := strings.TrimSpace(ve.Ident); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func indexOfIdent(idents []string, want string) int {
	want = strings.TrimSpace(want)
	for i, id := range idents {
		if strings.TrimSpace(id) == want {
			return i
		}
	}
	return -1
}

var imgSrcRE = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)

// imageSrc finds the first embedded image reference in raw prompt markup.
func imageSrc(prompt string) (string, bool) {
	m := imgSrcRE.FindStringSubmatch(prompt)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NormalizeImageName maps a QTI img src to the archive-relative name used
// as the media map key: the Common Cartridge file-base placeholder is
// stripped and any query string dropped.
func NormalizeImageName(src string) string {
	name := strings.TrimPrefix(src, "$IMS-CC-FILEBASE$/")
	name, _, _ = strings.Cut(name, "?")
	return name
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	copy(out, parts)
	return out
}
