package selectbox

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Item is one selectable row.
type Item struct {
	ID    string
	Label string
	Meta  string
}

type Action int

const (
	ActionNone Action = iota
	ActionMoved
	ActionToggled
	ActionChosen
	ActionCancelled
)

func (a Action) String() string {
	switch a {
	case ActionMoved:
		return "moved"
	case ActionToggled:
		return "toggled"
	case ActionChosen:
		return "chosen"
	case ActionCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

type Result struct {
	Action Action
	Item   Item
}

// Picker is the filter and cursor state behind a list popup. In multi mode
// space toggles the row under the cursor.
type Picker struct {
	items    []Item
	filtered []Item
	query    string
	cursor   int
	multi    bool
	checked  map[string]bool
}

func NewPicker(items []Item, multi bool) *Picker {
	p := &Picker{multi: multi, checked: make(map[string]bool)}
	p.SetItems(items)
	return p
}

func (p *Picker) Query() string { return p.query }

func (p *Picker) Cursor() int { return p.cursor }

func (p *Picker) Multi() bool { return p.multi }

// Items returns the rows that survive the current query, best match first.
func (p *Picker) Items() []Item {
	return append([]Item(nil), p.filtered...)
}

// All returns every row in declaration order.
func (p *Picker) All() []Item {
	return append([]Item(nil), p.items...)
}

func (p *Picker) SetItems(items []Item) {
	p.items = append([]Item(nil), items...)
	p.rebuildFiltered()
}

func (p *Picker) SetQuery(q string) {
	p.query = q
	p.rebuildFiltered()
}

// Lookup finds a row by id regardless of the query.
func (p *Picker) Lookup(id string) (Item, bool) {
	for _, it := range p.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func (p *Picker) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Picker) CursorDown() {
	if p.cursor < len(p.filtered)-1 {
		p.cursor++
	}
}

// MoveTo puts the cursor on the row with id when it is visible.
func (p *Picker) MoveTo(id string) {
	for i, it := range p.filtered {
		if it.ID == id {
			p.cursor = i
			return
		}
	}
}

func (p *Picker) CurrentItem() (Item, bool) {
	if len(p.filtered) == 0 {
		return Item{}, false
	}
	return p.filtered[min(max(p.cursor, 0), len(p.filtered)-1)], true
}

func (p *Picker) IsChecked(id string) bool { return p.checked[id] }

// SetChecked replaces the checked set.
func (p *Picker) SetChecked(ids []string) {
	p.checked = make(map[string]bool, len(ids))
	for _, id := range ids {
		p.checked[id] = true
	}
}

// Checked returns the checked ids in declaration order.
func (p *Picker) Checked() []string {
	var out []string
	for _, it := range p.items {
		if p.checked[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

func (p *Picker) Toggle() (Item, bool) {
	it, ok := p.CurrentItem()
	if !ok {
		return Item{}, false
	}
	if p.checked[it.ID] {
		delete(p.checked, it.ID)
	} else {
		p.checked[it.ID] = true
	}
	return it, true
}

// HandleKey applies a bubbletea key name to the picker.
func (p *Picker) HandleKey(keyName string) Result {
	switch keyName {
	case "up", "ctrl+p":
		before := p.cursor
		p.CursorUp()
		if p.cursor != before {
			return Result{Action: ActionMoved}
		}
		return Result{}
	case "down", "ctrl+n":
		before := p.cursor
		p.CursorDown()
		if p.cursor != before {
			return Result{Action: ActionMoved}
		}
		return Result{}
	case "enter":
		it, ok := p.CurrentItem()
		if !ok && !p.multi {
			return Result{}
		}
		return Result{Action: ActionChosen, Item: it}
	case "esc":
		return Result{Action: ActionCancelled}
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
		return Result{}
	case " ", "space":
		if p.multi {
			if it, ok := p.Toggle(); ok {
				return Result{Action: ActionToggled, Item: it}
			}
			return Result{}
		}
		p.SetQuery(p.query + " ")
		return Result{}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
		return Result{}
	}
}

type scoredItem struct {
	item  Item
	score int
	index int
}

func (p *Picker) rebuildFiltered() {
	q := strings.TrimSpace(p.query)
	scored := make([]scoredItem, 0, len(p.items))
	for idx, it := range p.items {
		matched, score := matchScore(it.Label, q)
		if !matched {
			continue
		}
		scored = append(scored, scoredItem{item: it, score: score, index: idx})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})
	p.filtered = make([]Item, 0, len(scored))
	for _, row := range scored {
		p.filtered = append(p.filtered, row.item)
	}
	if p.cursor > len(p.filtered)-1 {
		p.cursor = len(p.filtered) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// matchScore ranks a subsequence match first; failing that, a label word
// within typo distance of the query still matches with a negative score.
func matchScore(label, query string) (bool, int) {
	if ok, score := fuzzyMatchScore(label, query); ok {
		return true, score
	}
	if d, ok := typoDistance(label, query); ok {
		return true, -d
	}
	return false, 0
}

func fuzzyMatchScore(label, query string) (bool, int) {
	if query == "" {
		return true, 0
	}
	labelLower := strings.ToLower(label)
	queryLower := strings.ToLower(query)

	matchIdx := make([]int, 0, len(queryLower))
	from := 0
	for i := 0; i < len(queryLower); i++ {
		j := strings.IndexByte(labelLower[from:], queryLower[i])
		if j < 0 {
			return false, 0
		}
		matchIdx = append(matchIdx, from+j)
		from += j + 1
	}

	score := len(queryLower)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if strings.EqualFold(strings.TrimSpace(label), query) {
		score += 20
	}
	return true, score
}

// typoDistance compares the query against each label word. Queries shorter
// than three characters never fall back.
func typoDistance(label, query string) (int, bool) {
	q := strings.ToLower(query)
	if len(q) < 3 {
		return 0, false
	}
	limit := 1
	if len(q) >= 6 {
		limit = 2
	}
	best := -1
	for _, word := range strings.Fields(strings.ToLower(label)) {
		d := levenshtein.ComputeDistance(word, q)
		if len(word) > len(q) {
			d = min(d, levenshtein.ComputeDistance(word[:len(q)], q))
		}
		if d <= limit && (best < 0 || d < best) {
			best = d
		}
	}
	return best, best >= 0
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] > 32 && keyName[0] < 127
}
