package text

import "strings"

// Word is one space-delimited token of a run, with its measured advance.
type Word struct {
	Text    string
	Advance float64 // sum of glyph advances + letter-spacing, excludes trailing space
}

// RunSpec is one inline-styled fragment of a Text node, carrying everything
// the line breaker needs to measure it independent of the others (spec.md
// section 4.3 "Multi-run text").
type RunSpec struct {
	Content       string
	Font          Font
	FontSize      float64
	LetterSpacing float64
}

// Fragment is a slice of one run's text that landed on a single line.
type Fragment struct {
	RunIndex int
	Text     string
	Advance  float64
}

// Line is one line produced by the breaker: a sequence of per-run fragments
// in original run order, plus the total advance consumed (excluding the
// line's leading/trailing space).
type Line struct {
	Fragments []Fragment
	Advance   float64
}

// wordToken is one word (or inter-run boundary marker) fed to the greedy
// filler, tagged with which run it came from.
type wordToken struct {
	runIndex int
	text     string
	advance  float64
}

// BreakLines runs the greedy word-wrap algorithm of spec.md section 4.3
// across one or more styled runs, filling lines up to maxWidth. It also
// returns min_content_width: the advance of the single widest word seen,
// used by flex-shrink clamping (section 4.4).
func BreakLines(runs []RunSpec, maxWidth float64) (lines []Line, minContentWidth float64) {
	var tokens []wordToken
	for i, run := range runs {
		for _, w := range splitWords(run.Content) {
			adv := measureWord(w, run.Font, run.FontSize, run.LetterSpacing)
			tokens = append(tokens, wordToken{runIndex: i, text: w, advance: adv})
			if adv > minContentWidth {
				minContentWidth = adv
			}
		}
	}
	if len(tokens) == 0 {
		return nil, 0
	}

	spaceAdvance := func(runIndex int) float64 {
		return runs[runIndex].Font.Advance(' ', runs[runIndex].FontSize)
	}

	var cur Line
	var curWidth float64
	flush := func() {
		if len(cur.Fragments) == 0 {
			return
		}
		cur.Advance = curWidth
		lines = append(lines, cur)
		cur = Line{}
		curWidth = 0
	}

	appendWord := func(tok wordToken) {
		needsSpace := len(cur.Fragments) > 0
		addWidth := tok.advance
		if needsSpace {
			addWidth += spaceAdvance(tok.runIndex)
		}
		if n := len(cur.Fragments); n > 0 && cur.Fragments[n-1].RunIndex == tok.runIndex {
			sep := ""
			if needsSpace {
				sep = " "
			}
			cur.Fragments[n-1].Text += sep + tok.text
			cur.Fragments[n-1].Advance += addWidth
		} else {
			text := tok.text
			if needsSpace {
				text = " " + text
			}
			cur.Fragments = append(cur.Fragments, Fragment{RunIndex: tok.runIndex, Text: text, Advance: addWidth})
		}
		curWidth += addWidth
	}

	for _, tok := range tokens {
		needsSpace := len(cur.Fragments) > 0
		extra := tok.advance
		if needsSpace {
			extra += spaceAdvance(tok.runIndex)
		}
		if len(cur.Fragments) > 0 && curWidth+extra > maxWidth {
			flush()
			appendWord(tok)
			continue
		}
		appendWord(tok)
	}
	flush()
	return lines, minContentWidth
}

func splitWords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' })
	return fields
}

func measureWord(word string, font Font, fontSize, letterSpacing float64) float64 {
	var total float64
	runes := []rune(word)
	for i, r := range runes {
		total += font.Advance(r, fontSize)
		if i < len(runes)-1 {
			total += letterSpacing
		}
	}
	return total
}
