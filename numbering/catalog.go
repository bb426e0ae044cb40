// Package numbering resolves WordprocessingML list numbering: it reads the
// numbering definitions part, keeps per-definition counters in document
// order, and renders counter values in the supported numeral systems.
package numbering

import (
	"bytes"
	"encoding/xml"
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// AbstractID identifies an abstract numbering definition (w:abstractNum)
type AbstractID int

// InstanceID identifies a numbering instance (w:num), the id paragraphs
// reference through w:numId
type InstanceID int

// Level is a zero-based outline depth within an abstract definition
type Level int

// MaxLevel is the deepest level WordprocessingML defines
const MaxLevel Level = 8

// DefaultTemplate is used when a level omits w:lvlText
const DefaultTemplate = "%1."

// LevelRule describes how one level of an abstract definition is displayed
type LevelRule struct {
	Format   Format
	Template string
}

// DefaultLevelRule is substituted for a level whose format or template is
// missing
func DefaultLevelRule() LevelRule {
	return LevelRule{Format: Decimal, Template: DefaultTemplate}
}

// Catalog holds the parsed numbering definitions of one document.
// It is immutable after Load.
type Catalog struct {
	instances map[InstanceID]AbstractID
	abstracts map[AbstractID]map[Level]LevelRule
}

// LoadOption configures Load
type LoadOption func(*loadOptions)

type loadOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger that records skipped elements and defaults
func WithLogger(logger *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		instances: make(map[InstanceID]AbstractID),
		abstracts: make(map[AbstractID]map[Level]LevelRule),
	}
}

// Load parses a numbering definitions part. Absent or empty data yields an
// empty catalog. Each abstractNum and num element is decoded on its own, so
// a malformed or truncated element is skipped without losing the rest.
func Load(data []byte, opts ...LoadOption) *Catalog {
	o := &loadOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(o)
	}

	c := NewCatalog()
	for _, el := range definitionElements(data) {
		decoder := xml.NewDecoder(bytes.NewReader(el))
		decoder.Strict = false

		var n node
		if err := decoder.Decode(&n); err != nil {
			o.logger.Debug("skipping malformed element", "element", string(el[:min(len(el), 40)]), "error", err)
			continue
		}
		switch n.XMLName.Local {
		case "abstractNum":
			c.addAbstract(n, o.logger)
		case "num":
			c.addInstance(n, o.logger)
		}
	}
	return c
}

// definitionElements returns the raw bytes of every abstractNum and num
// element in document order. Neither element nests inside itself, so an
// element runs from its start tag to the first matching end tag. Elements
// that are never closed are dropped.
func definitionElements(data []byte) [][]byte {
	var out [][]byte
	for i := 0; i < len(data); {
		j := bytes.IndexByte(data[i:], '<')
		if j < 0 {
			break
		}
		start := i + j
		i = start + 1

		qname := tagName(data[i:])
		if local := unprefixed(qname); local != "abstractNum" && local != "num" {
			continue
		}
		if end := elementEnd(data, start, qname); end > 0 {
			out = append(out, data[start:end])
		}
	}
	return out
}

// tagName reads the qualified name that follows a '<'. End tags, comments
// and processing instructions yield names that never match an element.
func tagName(b []byte) string {
	n := bytes.IndexAny(b, " \t\r\n/>")
	if n < 0 {
		return ""
	}
	return string(b[:n])
}

// elementEnd returns the offset just past the element starting at start,
// or -1 when it is not closed before another element of the same name.
func elementEnd(data []byte, start int, qname string) int {
	gt := bytes.IndexByte(data[start:], '>')
	if gt < 0 {
		return -1
	}
	if gt > 0 && data[start+gt-1] == '/' {
		return start + gt + 1
	}

	bodyStart := start + gt + 1
	closing := bytes.Index(data[bodyStart:], []byte("</"+qname+">"))
	if closing < 0 {
		return -1
	}
	body := data[bodyStart : bodyStart+closing]
	for k := bytes.IndexByte(body, '<'); k >= 0; {
		if tagName(body[k+1:]) == qname {
			return -1
		}
		next := bytes.IndexByte(body[k+1:], '<')
		if next < 0 {
			break
		}
		k += next + 1
	}
	return bodyStart + closing + len("</"+qname+">")
}

func unprefixed(qname string) string {
	if _, local, ok := strings.Cut(qname, ":"); ok {
		return local
	}
	return qname
}

// node is a generic element tree. Decoding into it only fails on XML syntax
// errors, so attribute interpretation stays explicit.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []node     `xml:",any"`
}

func (n node) attr(local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func (n node) child(local string) (node, bool) {
	for _, ch := range n.Children {
		if ch.XMLName.Local == local {
			return ch, true
		}
	}
	return node{}, false
}

// childVal returns the w:val attribute of the first child with the given name
func (n node) childVal(local string) (string, bool) {
	ch, ok := n.child(local)
	if !ok {
		return "", false
	}
	return ch.attr("val")
}

func (n node) intAttr(local string) (int, error) {
	v, ok := n.attr(local)
	if !ok {
		return 0, errMissing
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

var errMissing = errors.New("attribute missing")

func (c *Catalog) addAbstract(n node, logger *slog.Logger) {
	id, err := n.intAttr("abstractNumId")
	if err != nil {
		logger.Debug("skipping abstractNum", "reason", "bad abstractNumId", "error", err)
		return
	}

	levels := make(map[Level]LevelRule)
	for _, ch := range n.Children {
		if ch.XMLName.Local != "lvl" {
			continue
		}
		level, rule, err := parseLevel(ch)
		if err != nil {
			logger.Debug("skipping lvl", "abstractNumId", id, "error", err)
			continue
		}
		levels[level] = rule
	}

	c.abstracts[AbstractID(id)] = levels
}

func parseLevel(n node) (Level, LevelRule, error) {
	ilvl, err := n.intAttr("ilvl")
	if err != nil {
		return 0, LevelRule{}, err
	}
	if ilvl < 0 || Level(ilvl) > MaxLevel {
		return 0, LevelRule{}, errors.New("ilvl out of range: " + strconv.Itoa(ilvl))
	}

	rule := DefaultLevelRule()
	if v, ok := n.childVal("numFmt"); ok {
		rule.Format = ParseFormat(v)
	}
	if v, ok := n.childVal("lvlText"); ok {
		rule.Template = v
	}
	return Level(ilvl), rule, nil
}

func (c *Catalog) addInstance(n node, logger *slog.Logger) {
	id, err := n.intAttr("numId")
	if err != nil {
		logger.Debug("skipping num", "reason", "bad numId", "error", err)
		return
	}

	raw, ok := n.childVal("abstractNumId")
	if !ok {
		logger.Debug("skipping num", "numId", id, "reason", "no abstractNumId")
		return
	}
	abstractID, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Debug("skipping num", "numId", id, "reason", "bad abstractNumId", "error", err)
		return
	}

	c.instances[InstanceID(id)] = AbstractID(abstractID)
}

// AbstractIDFor returns the abstract definition a numbering instance uses
func (c *Catalog) AbstractIDFor(id InstanceID) (AbstractID, bool) {
	abstractID, ok := c.instances[id]
	return abstractID, ok
}

// LevelRuleFor returns the display rule of one level of an abstract
// definition
func (c *Catalog) LevelRuleFor(id AbstractID, level Level) (LevelRule, bool) {
	levels, ok := c.abstracts[id]
	if !ok {
		return LevelRule{}, false
	}
	rule, ok := levels[level]
	return rule, ok
}

// Abstracts returns the number of abstract definitions
func (c *Catalog) Abstracts() int {
	return len(c.abstracts)
}

// Instances returns the number of numbering instances, including those
// that point at an unknown abstract definition
func (c *Catalog) Instances() int {
	return len(c.instances)
}
