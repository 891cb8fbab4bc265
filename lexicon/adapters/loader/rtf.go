package loader

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"yadro.com/lexicon/lexicon/core"
)

// группы, содержимое которых не является текстом документа
var destinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "header": true, "footer": true, "headerl": true,
	"headerr": true, "footerl": true, "footerr": true, "object": true,
	"listtable": true, "listoverridetable": true, "rsidtbl": true,
	"generator": true, "xmlnstbl": true, "themedata": true, "datastore": true,
	"latentstyles": true, "filetbl": true, "revtbl": true,
}

var symbols = map[string]string{
	"par": "\n", "line": "\n", "sect": "\n", "page": "\n", "row": "\n",
	"cell": " ", "tab": "\t",
	"emdash": "—", "endash": "–", "bullet": "•",
	"lquote": "‘", "rquote": "’", "ldblquote": "«", "rdblquote": "»",
}

type rtfState struct {
	skip bool
	uc   int
}

type rtfParser struct {
	data  []byte
	pos   int
	out   strings.Builder
	state rtfState
	stack []rtfState
	// сколько символов пропустить после \uN
	fallback int
}

func decodeRTF(data []byte) (string, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(`{\rtf`)) {
		return "", fmt.Errorf("%w: missing rtf header", core.ErrContent)
	}

	p := &rtfParser{data: data, state: rtfState{uc: 1}}
	if err := p.parse(); err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrContent, err)
	}
	return p.out.String(), nil
}

func (p *rtfParser) parse() error {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch c {
		case '{':
			p.stack = append(p.stack, p.state)
			p.fallback = 0
			p.pos++
		case '}':
			if len(p.stack) == 0 {
				return fmt.Errorf("unbalanced group at %d", p.pos)
			}
			p.state = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.fallback = 0
			p.pos++
		case '\\':
			if err := p.control(); err != nil {
				return err
			}
		case '\r', '\n':
			p.pos++
		default:
			// сырой текст читается как UTF-8, cp1251 остаётся для битых последовательностей
			if c >= utf8.RuneSelf {
				if r, size := utf8.DecodeRune(p.data[p.pos:]); size > 1 {
					p.emitRune(r)
					p.pos += size
					continue
				}
			}
			p.emitByte(c)
			p.pos++
		}
	}
	return nil
}

func (p *rtfParser) control() error {
	p.pos++ // '\'
	if p.pos >= len(p.data) {
		return fmt.Errorf("dangling backslash")
	}

	c := p.data[p.pos]
	switch {
	case c == '\\' || c == '{' || c == '}':
		p.emitByte(c)
		p.pos++
	case c == '\'':
		if p.pos+3 > len(p.data) {
			return fmt.Errorf("truncated hex escape")
		}
		b, err := strconv.ParseUint(string(p.data[p.pos+1:p.pos+3]), 16, 8)
		if err != nil {
			return fmt.Errorf("bad hex escape at %d", p.pos)
		}
		p.emitByte(byte(b))
		p.pos += 3
	case c == '*':
		p.state.skip = true
		p.pos++
	case c == '~':
		p.emit(" ")
		p.pos++
	case c == '_':
		p.emit("-")
		p.pos++
	case c == '\r' || c == '\n':
		p.emit("\n")
		p.pos++
	case isASCIILetter(c):
		p.word()
	default:
		// \- \| \: и прочие символы без текста
		p.pos++
	}
	return nil
}

func (p *rtfParser) word() {
	start := p.pos
	for p.pos < len(p.data) && isASCIILetter(p.data[p.pos]) {
		p.pos++
	}
	name := string(p.data[start:p.pos])

	paramStart := p.pos
	if p.pos < len(p.data) && p.data[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		p.pos++
	}
	param, hasParam := 0, false
	if p.pos > paramStart {
		if n, err := strconv.Atoi(string(p.data[paramStart:p.pos])); err == nil {
			param, hasParam = n, true
		}
	}
	if p.pos < len(p.data) && p.data[p.pos] == ' ' {
		p.pos++
	}

	switch {
	case destinations[name]:
		p.state.skip = true
	case name == "bin" && hasParam:
		p.pos = min(p.pos+param, len(p.data))
	case name == "uc" && hasParam:
		p.state.uc = param
	case name == "u" && hasParam:
		if param < 0 {
			param += 65536
		}
		p.emit(string(rune(param)))
		p.fallback = p.state.uc
	default:
		if s, ok := symbols[name]; ok {
			p.emit(s)
		}
	}
}

func (p *rtfParser) emitByte(b byte) {
	p.emitRune(charmap.Windows1251.DecodeByte(b))
}

func (p *rtfParser) emitRune(r rune) {
	if p.fallback > 0 {
		p.fallback--
		return
	}
	if p.state.skip {
		return
	}
	p.out.WriteRune(r)
}

func (p *rtfParser) emit(s string) {
	if p.state.skip {
		return
	}
	p.out.WriteString(s)
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
