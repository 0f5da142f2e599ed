package ai

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Completer produces text for a prompt, or "" when unavailable.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) string
}

// Engine generates captions, hashtags and summaries. When a provider is
// configured its output is preferred; the local heuristics below are the
// fallback and the only path when provider is nil.
type Engine struct {
	provider Completer
}

func NewEngine(provider Completer) *Engine {
	return &Engine{provider: provider}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	wordRe       = regexp.MustCompile(`[A-Za-z0-9']{2,}`)
	nonAlnumRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
	hashtagRe    = regexp.MustCompile(`#\w+`)
)

var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "in": true, "on": true,
	"with": true, "a": true, "an": true, "of": true, "for": true,
	"to": true, "is": true, "are": true, "that": true, "this": true,
	"it": true, "as": true, "by": true, "from": true,
}

func cleanText(text string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
}

// extractKeywords returns the topN most frequent non-stopwords, ties broken
// alphabetically.
func extractKeywords(text string, topN int) []string {
	freq := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if stopwords[w] {
			continue
		}
		freq[w]++
	}

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}

func formatHashtags(keywords []string, maxTags int) []string {
	tags := make([]string, 0, maxTags)
	for _, kw := range keywords {
		tag := "#" + nonAlnumRe.ReplaceAllString(kw, "")
		if len(tag) > 1 {
			tags = append(tags, tag)
		}
		if len(tags) >= maxTags {
			break
		}
	}
	for _, f := range []string{"#Viral", "#Trending", "#Creators"} {
		if len(tags) >= maxTags {
			break
		}
		if !contains(tags, f) {
			tags = append(tags, f)
		}
	}
	return tags
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var platformCTA = map[string]string{
	"generic":   "Learn more: link in bio",
	"instagram": "Check link in bio 👇",
	"youtube":   "Watch full video on our channel ▶️",
	"linkedin":  "Read the full piece on our site",
	"twitter":   "RT if you found this helpful 🔁",
}

func localCaption(text, tone, length, platform string) string {
	text = cleanText(text)
	base := text
	if len(text) >= 140 {
		base = text[:137] + "..."
	}
	keywords := extractKeywords(text, 6)
	hashtags := strings.Join(formatHashtags(keywords, 4), " ")

	cta, ok := platformCTA[strings.ToLower(platform)]
	if !ok {
		cta = platformCTA["generic"]
	}

	var caption string
	switch length {
	case "short":
		caption = fmt.Sprintf("%s %s", base, hashtags)
	case "long":
		caption = fmt.Sprintf("%s\n\nKey points: %s\n\n%s %s", base, strings.Join(keywords, ", "), cta, hashtags)
	default:
		caption = fmt.Sprintf("%s %s %s", base, cta, hashtags)
	}
	if tone == "excited" {
		caption += " 🚀"
	}
	return strings.TrimSpace(caption)
}

func (e *Engine) GenerateCaption(ctx context.Context, text, tone, length, platform string) string {
	text = cleanText(text)
	if e.provider != nil {
		prompt := fmt.Sprintf(
			"Write a %s %s social media caption tailored for %s. Keep brand voice professional. Content:\n\n%s\n\nInclude 3 hashtags and a short CTA.",
			length, tone, platform, text)
		if out := e.provider.Complete(ctx, prompt, 150); out != "" {
			return out
		}
	}
	return localCaption(text, tone, length, platform)
}

func (e *Engine) GenerateHashtags(ctx context.Context, text string, maxTags int) []string {
	text = cleanText(text)
	if e.provider != nil {
		prompt := fmt.Sprintf(
			"Suggest up to %d relevant hashtags (no explanation) for this text:\n\n%s\n\nReturn only hashtags separated by commas.",
			maxTags, text)
		if out := e.provider.Complete(ctx, prompt, 80); out != "" {
			if cand := hashtagRe.FindAllString(out, -1); len(cand) > 0 {
				if len(cand) > maxTags {
					cand = cand[:maxTags]
				}
				return cand
			}
		}
	}
	keywords := extractKeywords(text, maxTags*2)
	return formatHashtags(keywords, maxTags)
}

func (e *Engine) SummarizeVideo(ctx context.Context, transcript string, maxSentences int) string {
	t := cleanText(transcript)
	if e.provider != nil {
		prompt := fmt.Sprintf("Summarize the following video transcript in %d concise sentences:\n\n%s", maxSentences, t)
		if out := e.provider.Complete(ctx, prompt, 180); out != "" {
			return out
		}
	}

	sentences := splitSentences(t)
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	s := strings.TrimSpace(strings.Join(sentences, " "))
	if s != "" {
		return s
	}
	if len(t) > 200 {
		t = t[:200]
	}
	return t + "..."
}

// splitSentences cuts after terminal punctuation followed by whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(runes) && (runes[j] == '.' || runes[j] == '!' || runes[j] == '?') {
				j++
			}
			if j >= len(runes) || runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' {
				sent := strings.TrimSpace(string(runes[start:j]))
				if sent != "" {
					out = append(out, sent)
				}
				start = j
				i = j
			}
		}
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}
