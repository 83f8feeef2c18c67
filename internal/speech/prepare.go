// Package speech turns a model-written script into synthesizer-ready SSML
// fragments: Prepare cleans and annotates the text, Chunk splits it at
// sentence boundaries to fit the synthesizer's per-request limit.
package speech

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Profile carries the speech identity of one podcast.
type Profile struct {
	Title   string // Podcast title spoken in the intro and outro
	Voice   string // Synthesizer voice identifier, also the host name
	Weekly  bool   // Selects the weekly intro/outro framing
	Staging bool   // Prefixes a staging notice to the intro
}

var (
	breakTag      = regexp.MustCompile(`<break[^>]*/?>`)
	mdHeader      = regexp.MustCompile(`(?m)^#+\s*`)
	mdBold        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	mdNumbered    = regexp.MustCompile(`(?m)^\d+\.\s*`)
	urlPattern    = regexp.MustCompile(`https?://\S+`)
	dividerRun    = regexp.MustCompile(`═+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	sentenceEnd   = regexp.MustCompile(`([.!?])\s+`)

	podcastSections = regexp.MustCompile(`(TOP NEWS HEADLINES|DEEP DIVE ANALYSIS)`)
	analysisTopics  = regexp.MustCompile(`(Technical Deep Dive|Financial Analysis|Market Disruption|Cultural and Social Impact|Executive Action Plan)`)

	// Spoken substitutions for characters that break SSML. Applied before
	// escaping so no raw markup characters survive into the document.
	unsafeChars = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"&", "and",
		"%", " percent",
		"$", "dollar ",
		"<", " less than ",
		">", " greater than ",
	)

	// Escapes markup characters only. Quotes stay literal so the inserted
	// break tags keep consistent quoting.
	ssmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Prepare converts a raw script into the full spoken document: markdown and
// stale markup stripped, SSML-unsafe characters replaced before escaping,
// pause tags inserted at sentence and section boundaries, and the dated
// intro and outro attached. The step order is load-bearing: character
// substitution must precede escaping, and break insertion must follow it.
func Prepare(text string, profile Profile, now time.Time) string {
	text = breakTag.ReplaceAllString(text, " ")

	text = mdHeader.ReplaceAllString(text, "")
	text = mdBold.ReplaceAllString(text, "$1")
	text = mdItalic.ReplaceAllString(text, "$1")
	text = mdNumbered.ReplaceAllString(text, "")

	text = unsafeChars.Replace(text)

	text = urlPattern.ReplaceAllString(text, "link")
	text = dividerRun.ReplaceAllString(text, " ")

	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))

	intro, outro := framing(profile, now)
	text = ssmlEscaper.Replace(text)
	intro = ssmlEscaper.Replace(intro)
	outro = ssmlEscaper.Replace(outro)

	text = sentenceEnd.ReplaceAllString(text, `$1 <break time="0.5s"/> `)
	text = podcastSections.ReplaceAllString(text, `<break time="1s"/> $1 <break time="1s"/>`)
	text = analysisTopics.ReplaceAllString(text, `<break time="1s"/> $1 <break time="1s"/>`)

	return fmt.Sprintf(`%s <break time="2s"/> %s <break time="2s"/> %s`, intro, text, outro)
}

func framing(profile Profile, now time.Time) (intro, outro string) {
	host := hostName(profile.Voice, profile.Weekly)
	date := fmt.Sprintf("%s, %s %d%s",
		now.Weekday(), now.Month(), now.Day(), ordinalSuffix(now.Day()))

	notice := ""
	if profile.Staging {
		notice = "This is a staging test. "
	}

	if profile.Weekly {
		intro = fmt.Sprintf("%sWelcome to Weekly AI Intelligence, your strategic analysis of artificial intelligence ecosystem evolution. I'm %s, bringing you this week's most significant developments analyzed through a strategic lens. Today is %s.",
			notice, host, date)
		outro = fmt.Sprintf("That concludes this week's AI Intelligence analysis. I'm %s. These strategic insights will help guide your decision-making in the evolving AI landscape. Until next week, stay strategically informed.", host)
		return intro, outro
	}

	intro = fmt.Sprintf("%sWelcome to %s. I'm %s, bringing you today's most important developments in artificial intelligence. Today is %s.",
		notice, profile.Title, host, date)
	outro = fmt.Sprintf("That's all for today's %s. I'm %s, and I'll be back tomorrow with more AI insights. Until then, keep innovating.",
		profile.Title, host)
	return intro, outro
}

// hostName maps a synthesizer voice to the spoken host identity. Known
// voices get their canonical capitalization; anything else is spoken as-is.
func hostName(voice string, weekly bool) string {
	role := "a synthetic intelligence agent"
	if weekly {
		role = "a synthetic intelligence analyst"
	}
	switch strings.ToLower(voice) {
	case "joanna":
		return "Joanna, " + role
	case "matthew":
		return "Matthew, " + role
	case "amy":
		return "Amy, " + role
	case "brian":
		return "Brian, " + role
	default:
		return voice + ", " + role
	}
}

// ordinalSuffix returns the English suffix for a day of month.
func ordinalSuffix(day int) string {
	if (day >= 4 && day <= 20) || (day >= 24 && day <= 30) {
		return "th"
	}
	return [...]string{"st", "nd", "rd"}[day%10-1]
}
