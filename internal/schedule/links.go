package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

// RelationType is the dependency type between a task and one predecessor.
type RelationType string

const (
	FinishToStart  RelationType = "FS" // TI, the default
	StartToStart   RelationType = "SS" // II
	FinishToFinish RelationType = "FF" // TT
	StartToFinish  RelationType = "SF" // IT
)

// relationCodes maps both the Portuguese and English codes the planning
// tool emits.
var relationCodes = map[string]RelationType{
	"TI": FinishToStart,
	"FS": FinishToStart,
	"II": StartToStart,
	"SS": StartToStart,
	"TT": FinishToFinish,
	"FF": FinishToFinish,
	"IT": StartToFinish,
	"SF": StartToFinish,
}

// Link is one parsed entry of a predecessor expression such as "12TI+2 dias".
type Link struct {
	ID        string       `json:"id"`
	Type      RelationType `json:"type"`
	Sign      int          `json:"sign"` // +1 for a "+" offset, -1 for "-", 0 when absent
	Offset    float64      `json:"offset,omitempty"`
	Unit      string       `json:"unit,omitempty"`
	Raw       string       `json:"raw"`
	Malformed bool         `json:"malformed,omitempty"`
}

var linkPattern = regexp.MustCompile(`^(\d+)\s*([A-Za-z]{2})?\s*(?:([+-])\s*(\d+(?:[.,]\d+)?)\s*(.*))?$`)

// ParseLinks splits a predecessor expression into typed links. Entries are
// separated by ";" or ",". Inside an offset, "2,5" is ambiguous between a
// decimal comma and two entries, so "," is read as a decimal mark only when
// the expression separates entries with ";" or the digits after it carry a
// unit ("2,5 dias"). Otherwise "3+2,4" is two links, 3+2 and 4.
// Entries that do not follow the ID[TYPE][±OFFSET[UNIT]] form are returned
// with Malformed set and the default type, so they never count as a lead,
// lag or non-default relationship.
func ParseLinks(expr string) Links {
	var links Links
	for _, entry := range splitEntries(expr) {
		links = append(links, parseLink(entry))
	}
	return links
}

func parseLink(entry string) Link {
	link := Link{Raw: entry, Type: FinishToStart}

	m := linkPattern.FindStringSubmatch(entry)
	if m == nil {
		link.Malformed = true
		return link
	}

	link.ID = m[1]
	if code := strings.ToUpper(m[2]); code != "" {
		rt, ok := relationCodes[code]
		if !ok {
			link.Malformed = true
			return link
		}
		link.Type = rt
	}

	if m[3] != "" {
		offset, err := strconv.ParseFloat(strings.Replace(m[4], ",", ".", 1), 64)
		if err != nil {
			link.Malformed = true
			return link
		}
		link.Offset = offset
		link.Unit = strings.TrimSpace(m[5])
		link.Sign = 1
		if m[3] == "-" {
			link.Sign = -1
		}
	}

	return link
}

func splitEntries(expr string) []string {
	var entries []string
	var cur strings.Builder
	inOffset := false
	semicolonList := strings.Contains(expr, ";")

	flush := func() {
		if e := strings.TrimSpace(cur.String()); e != "" {
			entries = append(entries, e)
		}
		cur.Reset()
		inOffset = false
	}

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == ';':
			flush()
		case c == ',':
			decimal := inOffset && i > 0 && isDigit(expr[i-1]) && i+1 < len(expr) && isDigit(expr[i+1]) &&
				(semicolonList || unitFollows(expr[i+1:]))
			if decimal {
				cur.WriteByte(c)
			} else {
				flush()
			}
		default:
			if c == '+' || c == '-' {
				inOffset = true
			}
			cur.WriteByte(c)
		}
	}
	flush()
	return entries
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// unitFollows reports whether the digits at the start of rest are followed by
// a unit such as "dias", "d" or "%". A relation code ("4II") starts a new
// entry instead.
func unitFollows(rest string) bool {
	i := 0
	for i < len(rest) && isDigit(rest[i]) {
		i++
	}
	rest = strings.TrimLeft(rest[i:], " ")
	if strings.HasPrefix(rest, "%") {
		return true
	}
	word := rest
	for j := 0; j < len(rest); j++ {
		c := rest[j]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			word = rest[:j]
			break
		}
	}
	if word == "" {
		return false
	}
	_, isCode := relationCodes[strings.ToUpper(word)]
	return !isCode
}

// Links is a parsed predecessor expression.
type Links []Link

// HasLead reports whether any link carries a "+" offset.
func (ls Links) HasLead() bool {
	for _, l := range ls {
		if !l.Malformed && l.Sign > 0 {
			return true
		}
	}
	return false
}

// HasLag reports whether any link carries a "-" offset.
func (ls Links) HasLag() bool {
	for _, l := range ls {
		if !l.Malformed && l.Sign < 0 {
			return true
		}
	}
	return false
}

// DefaultTypeOnly is true when no link uses SS, FF or SF. An empty
// expression qualifies.
func (ls Links) DefaultTypeOnly() bool {
	for _, l := range ls {
		if l.Type != FinishToStart {
			return false
		}
	}
	return true
}

// MalformedCount returns how many entries could not be classified.
func (ls Links) MalformedCount() int {
	n := 0
	for _, l := range ls {
		if l.Malformed {
			n++
		}
	}
	return n
}
