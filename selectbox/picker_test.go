package selectbox

import (
	"strings"
	"testing"
)

func fruit() []Item {
	return []Item{
		{ID: "apple", Label: "Apple", Meta: "red"},
		{ID: "apricot", Label: "Apricot"},
		{ID: "banana", Label: "Banana", Meta: "yellow"},
		{ID: "cherry", Label: "Cherry"},
		{ID: "grape", Label: "Green Grape"},
	}
}

func ids(items []Item) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return strings.Join(out, ",")
}

func TestFuzzyMatchScoreRanking(t *testing.T) {
	tests := []struct {
		name   string
		labelA string
		labelB string
		query  string
	}{
		{name: "exact beats prefix", labelA: "Gas", labelB: "Gas Bill", query: "gas"},
		{name: "prefix beats non-prefix", labelA: "Games", labelB: "Video Games", query: "ga"},
		{name: "consecutive beats split", labelA: "Gamma", labelB: "Palm Medium", query: "amm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchA, scoreA := fuzzyMatchScore(tt.labelA, tt.query)
			matchB, scoreB := fuzzyMatchScore(tt.labelB, tt.query)
			if !matchA || !matchB {
				t.Fatalf("both labels should match query %q", tt.query)
			}
			if scoreA <= scoreB {
				t.Fatalf("scoreA=%d scoreB=%d; expected %q higher than %q", scoreA, scoreB, tt.labelA, tt.labelB)
			}
		})
	}
}

func TestTypoFallbackMatchesNearMisses(t *testing.T) {
	tests := []struct {
		label string
		query string
		want  bool
	}{
		{"Banana", "bnaana", true},
		{"Apple", "aplle", true},
		{"Green Grape", "grspe", true},
		{"Cherry", "xyz", false},
		{"Cherry", "ch", true},
		{"Cherry", "qq", false},
		{"Banana", "orange", false},
	}
	for _, tt := range tests {
		got, _ := matchScore(tt.label, tt.query)
		if got != tt.want {
			t.Fatalf("matchScore(%q, %q) = %v, want %v", tt.label, tt.query, got, tt.want)
		}
	}
}

func TestTypoMatchesRankBelowSubsequenceMatches(t *testing.T) {
	p := NewPicker([]Item{
		{ID: "typo", Label: "Grapf"},
		{ID: "exact", Label: "Grape"},
	}, false)
	p.SetQuery("grape")
	if got := ids(p.Items()); got != "exact,typo" {
		t.Fatalf("order = %q, want %q", got, "exact,typo")
	}
}

func TestPickerSetQueryDeterministicOrdering(t *testing.T) {
	p := NewPicker(fruit(), false)
	p.SetQuery("ap")
	if got := ids(p.Items()); got != "apple,apricot,grape" {
		t.Fatalf("order = %q, want %q", got, "apple,apricot,grape")
	}
	p.SetQuery("")
	if got := ids(p.Items()); got != "apple,apricot,banana,cherry,grape" {
		t.Fatalf("empty query order = %q", got)
	}
}

func TestPickerCursorClampsToFilteredRows(t *testing.T) {
	p := NewPicker(fruit(), false)
	for i := 0; i < 10; i++ {
		p.HandleKey("down")
	}
	if p.Cursor() != 4 {
		t.Fatalf("cursor = %d, want 4", p.Cursor())
	}
	p.SetQuery("cherry")
	if p.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0 after narrowing", p.Cursor())
	}
	if res := p.HandleKey("up"); res.Action != ActionNone {
		t.Fatalf("up at top = %v, want none", res.Action)
	}
}

func TestPickerTypingAndBackspaceEditQuery(t *testing.T) {
	p := NewPicker(fruit(), false)
	for _, k := range []string{"c", "h", "e"} {
		p.HandleKey(k)
	}
	if p.Query() != "che" {
		t.Fatalf("query = %q, want che", p.Query())
	}
	p.HandleKey("backspace")
	if p.Query() != "ch" {
		t.Fatalf("query = %q, want ch", p.Query())
	}
	p.HandleKey("ctrl+x")
	if p.Query() != "ch" {
		t.Fatalf("non-printable key changed query to %q", p.Query())
	}
}

func TestPickerHandleKeyEnterSingleSelect(t *testing.T) {
	p := NewPicker(fruit(), false)
	p.HandleKey("down")
	res := p.HandleKey("enter")
	if res.Action != ActionChosen || res.Item.ID != "apricot" {
		t.Fatalf("enter = %v %q, want chosen apricot", res.Action, res.Item.ID)
	}
	p.SetQuery("zzzz")
	if res := p.HandleKey("enter"); res.Action != ActionNone {
		t.Fatalf("enter with no rows = %v, want none", res.Action)
	}
}

func TestPickerSpaceTogglesInMultiMode(t *testing.T) {
	p := NewPicker(fruit(), true)
	if res := p.HandleKey(" "); res.Action != ActionToggled || res.Item.ID != "apple" {
		t.Fatalf("space = %v %q, want toggled apple", res.Action, res.Item.ID)
	}
	p.HandleKey("down")
	p.HandleKey("down")
	p.HandleKey("space")
	if got := strings.Join(p.Checked(), ","); got != "apple,banana" {
		t.Fatalf("checked = %q, want apple,banana", got)
	}
	p.HandleKey("space")
	if got := strings.Join(p.Checked(), ","); got != "apple" {
		t.Fatalf("checked = %q, want apple", got)
	}
	if p.Query() != "" {
		t.Fatalf("space leaked into query: %q", p.Query())
	}
}

func TestPickerSpaceExtendsQueryInSingleMode(t *testing.T) {
	p := NewPicker(fruit(), false)
	p.HandleKey("g")
	p.HandleKey(" ")
	p.HandleKey("g")
	if p.Query() != "g g" {
		t.Fatalf("query = %q, want %q", p.Query(), "g g")
	}
	if got := ids(p.Items()); got != "grape" {
		t.Fatalf("items = %q, want grape", got)
	}
}

func TestPickerEscapeCancels(t *testing.T) {
	p := NewPicker(fruit(), true)
	if res := p.HandleKey("esc"); res.Action != ActionCancelled {
		t.Fatalf("esc = %v, want cancelled", res.Action)
	}
}

func TestPickerMoveToAndLookup(t *testing.T) {
	p := NewPicker(fruit(), false)
	p.MoveTo("cherry")
	if it, _ := p.CurrentItem(); it.ID != "cherry" {
		t.Fatalf("current = %q, want cherry", it.ID)
	}
	p.SetQuery("ban")
	if _, ok := p.Lookup("cherry"); !ok {
		t.Fatalf("lookup should ignore the query")
	}
	if _, ok := p.Lookup("durian"); ok {
		t.Fatalf("lookup found unknown id")
	}
}
