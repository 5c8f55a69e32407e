package export

import (
	"strings"
	"unicode/utf8"
)

// layout accumulates wrapped lines into fixed-height pages
type layout struct {
	opts  Options
	pages []Page
}

func (l *layout) newPage() {
	l.pages = append(l.pages, Page{})
}

func (l *layout) current() *Page {
	return &l.pages[len(l.pages)-1]
}

func (l *layout) remaining() int {
	return l.opts.LinesPerPage - len(l.current().Lines)
}

// raw appends one line, breaking the page when it is full
func (l *layout) raw(line string) {
	if l.remaining() <= 0 {
		l.newPage()
	}
	p := l.current()
	p.Lines = append(p.Lines, line)
}

func (l *layout) blank() {
	// no leading blank lines on a fresh page
	if len(l.current().Lines) == 0 || l.remaining() <= 0 {
		return
	}
	l.raw("")
}

func (l *layout) section(name string) {
	if l.remaining() < l.opts.SectionReserve {
		l.newPage()
	}
	l.blank()
	l.raw(name)
	l.raw(strings.Repeat("-", utf8.RuneCountInString(name)))
}

func (l *layout) text(s string) {
	for _, line := range wrap(s, l.opts.Width) {
		l.raw(line)
	}
}

func (l *layout) item(s string) {
	lines := wrap(s, l.opts.Width-utf8.RuneCountInString(bullet))
	for i, line := range lines {
		if i == 0 {
			l.raw(bullet + line)
			continue
		}
		l.raw(strings.Repeat(" ", utf8.RuneCountInString(bullet)) + line)
	}
}

func (l *layout) indented(s string) {
	for _, line := range wrap(s, l.opts.Width-2) {
		l.raw("  " + line)
	}
}

// wrap breaks s into lines of at most width runes on word boundaries. Words
// longer than width are split.
func wrap(s string, width int) []string {
	if width <= 0 {
		width = 1
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curLen = 0
	}

	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if curLen > 0 {
				flush()
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		wl := utf8.RuneCountInString(w)
		if wl == 0 {
			continue
		}
		if curLen > 0 && curLen+1+wl > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if curLen > 0 {
		flush()
	}
	return lines
}
