package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

func loadKB(t *testing.T) *knowledge.KnowledgeBase {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("loading knowledge base: %v", err)
	}
	return kb
}

func catalogEngine(t *testing.T, opts Options) (*Engine, *Catalog) {
	t.Helper()
	kb := loadKB(t)
	cat := NewCatalog(kb)
	return New(cat, kb, recommend.NewResolver(recommend.DefaultConfig()), opts), cat
}

func treeEngine(t *testing.T) *Engine {
	t.Helper()
	tree, err := decisiontree.Default()
	if err != nil {
		t.Fatalf("loading tree: %v", err)
	}
	return New(NewTreeGraph(tree), loadKB(t), recommend.NewResolver(recommend.DefaultConfig()), DefaultOptions())
}

func TestCombinationsFromCauses(t *testing.T) {
	_, cat := catalogEngine(t, DefaultOptions())
	combos := cat.Combinations()

	if combos[0].Key != GoodWeldKey || len(combos[0].DefectIDs) != 0 || combos[0].Label != "Good Weld" {
		t.Fatalf("first combination = %+v, want good weld", combos[0])
	}
	seen := make(map[string]bool)
	for _, c := range combos {
		if seen[c.Key] {
			t.Errorf("duplicate combination key %q", c.Key)
		}
		seen[c.Key] = true
	}
	// porosity has two causes in the dataset; only the first produces an entry.
	if combos[1].Key != "porosity" {
		t.Errorf("second combination = %q, want dataset order starting with porosity", combos[1].Key)
	}
}

func TestCombinationLabelsAndDescriptions(t *testing.T) {
	_, cat := catalogEngine(t, DefaultOptions())
	combo, ok := cat.Combination("inconsistent_width+rough_surface")
	if !ok {
		t.Fatal("combination missing")
	}
	if combo.Label != "Inconsistent Width + Rough Surface" {
		t.Errorf("label = %q", combo.Label)
	}
	want := []string{
		"• Inconsistent Width: Bead gets wider and narrower along its length",
		"• Rough Surface: Irregular, lumpy bead surface with uneven ripples",
	}
	if diff := cmp.Diff(want, combo.Descriptions); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
	if combo.Image != "assets/weld-images/inconsistent_width+rough_surface.png" {
		t.Errorf("image = %q", combo.Image)
	}
}

func TestCausesForCombinationExactMatch(t *testing.T) {
	_, cat := catalogEngine(t, DefaultOptions())

	for _, c := range cat.CausesForCombination([]string{"porosity"}) {
		if c.Key() != "porosity" {
			t.Errorf("porosity query returned cause %q keyed %q", c.ID, c.Key())
		}
	}
	got := cat.CausesForCombination([]string{"porosity"})
	if len(got) != 2 {
		t.Errorf("porosity causes = %d, want 2", len(got))
	}

	pair := cat.CausesForCombination([]string{"undercut", "porosity"})
	if len(pair) != 1 || pair[0].ID != "hot_contaminated" {
		t.Errorf("porosity+undercut causes = %+v", pair)
	}
	if got := cat.CausesForCombination([]string{"porosity", "undercut", "cracking"}); len(got) != 0 {
		t.Errorf("superset matched %d causes", len(got))
	}
}

func TestSelectCause(t *testing.T) {
	_, cat := catalogEngine(t, DefaultOptions())
	sel, err := cat.SelectCause("gas_coverage_loss")
	if err != nil {
		t.Fatal(err)
	}
	if sel.Mistake.ID != "gas_flow_wrong" {
		t.Errorf("mistake = %q, want first listed mistake", sel.Mistake.ID)
	}
	if _, err := cat.SelectCause("nope"); !errors.Is(err, ErrCauseNotFound) {
		t.Errorf("err = %v, want ErrCauseNotFound", err)
	}
}

func TestAdvanceGoBackRoundTrip(t *testing.T) {
	start := Position{History: []string{"setup"}, Current: "defects"}
	moved := Advance(start, "defects/porosity")
	if diff := cmp.Diff(Position{History: []string{"setup", "defects"}, Current: "defects/porosity"}, moved); diff != "" {
		t.Fatalf("Advance mismatch:\n%s", diff)
	}
	back, ok := GoBack(moved)
	if !ok {
		t.Fatal("GoBack reported no history")
	}
	if diff := cmp.Diff(start, back); diff != "" {
		t.Errorf("GoBack(Advance(p)) != p:\n%s", diff)
	}
	if len(start.History) != 1 {
		t.Error("Advance mutated its input")
	}

	empty := Position{Current: "defects"}
	if got, ok := GoBack(empty); ok || got.Current != "defects" {
		t.Errorf("GoBack on empty history = %+v, %v", got, ok)
	}
}

func TestRestartIdempotent(t *testing.T) {
	for _, mode := range []string{RestartReset, RestartPreserve} {
		t.Run(mode, func(t *testing.T) {
			e, _ := catalogEngine(t, Options{RestartMode: mode})
			s := e.Setup(e.NewSession(), params.Default())
			s, _ = e.Choose(s, "porosity")
			once := e.Restart(s)
			twice := e.Restart(once)
			if diff := cmp.Diff(once, twice, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Restart not idempotent:\n%s", diff)
			}
			if mode == RestartReset && (once.Parameters != nil || once.Current != NodeSetup) {
				t.Errorf("reset restart = %+v", once)
			}
			if mode == RestartPreserve && (once.Parameters == nil || once.Current != NodeDefects) {
				t.Errorf("preserve restart = %+v", once)
			}
		})
	}
}

func TestGoodWeldRoutesToSuccess(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.Setup(e.NewSession(), params.Default())
	s, err := e.Choose(s, GoodWeldKey)
	if err != nil {
		t.Fatal(err)
	}
	scr := e.Screen(s)
	if scr.Kind != ScreenSuccess {
		t.Fatalf("kind = %q, want success", scr.Kind)
	}
	if len(s.History) != 2 {
		t.Errorf("history = %v, want setup and defects only", s.History)
	}
}

func TestCatalogWalkAndAccept(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.Setup(e.NewSession(), params.New("1/8", 18, 200))

	scr := e.Screen(s)
	if scr.Kind != ScreenCombinations {
		t.Fatalf("kind = %q", scr.Kind)
	}

	s, err := e.Choose(s, "undercut")
	if err != nil {
		t.Fatal(err)
	}
	scr = e.Screen(s)
	if scr.Kind != ScreenCauses || scr.Title != "You selected: Undercut. Which of these applies?" {
		t.Fatalf("causes screen = %q %q", scr.Kind, scr.Title)
	}
	if scr.Choices[0].Description == "" {
		t.Error("cause choice should carry the first mistake's question")
	}

	s, err = e.Choose(s, "voltage_too_high_undercut")
	if err != nil {
		t.Fatal(err)
	}
	scr = e.Screen(s)
	if scr.Kind != ScreenRecommendation {
		t.Fatalf("kind = %q", scr.Kind)
	}
	rv := scr.Recommendation
	if rv.Suggestion.Text != "Decrease voltage from 18V to 16V" {
		t.Errorf("suggestion = %q", rv.Suggestion.Text)
	}
	if rv.AcceptLabel != "Done, I changed it" || rv.Counter != "Try This (1/3)" || rv.MistakeID != "voltage_set_too_high" {
		t.Errorf("view = %+v", rv)
	}

	s, err = e.Accept(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.Parameters.Voltage != 16 {
		t.Errorf("voltage = %v, want 16", s.Parameters.Voltage)
	}
	for _, id := range []string{"voltage", "voltage_set_too_high", "verify_voltage_wire_balance"} {
		if !s.Parameters.Tried[id] {
			t.Errorf("%s not marked tried", id)
		}
	}
	if s.Current != NodeDefects {
		t.Errorf("accept target = %q, want defect selection", s.Current)
	}
}

func TestAcceptTargetSetup(t *testing.T) {
	e, _ := catalogEngine(t, Options{AcceptTarget: AcceptSetup})
	s := e.Setup(e.NewSession(), params.Default())
	s, _ = e.Choose(s, "porosity")
	s, _ = e.Choose(s, "gas_coverage_loss")
	s, err := e.Accept(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.Current != NodeSetup || s.CanGoBack() {
		t.Errorf("position = %+v, want setup with empty history", s.Position)
	}
	if s.Parameters == nil || !s.Parameters.Tried["set_gas_flow_15_20"] {
		t.Error("settings should survive accept with checklist marked")
	}
}

func TestLastRecommendationOffersStartOver(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.Setup(e.NewSession(), params.Default())
	s, _ = e.Choose(s, "porosity")
	s, _ = e.Choose(s, "gas_coverage_loss")

	var err error
	for i := 0; i < 2; i++ {
		if got := e.Screen(s).Recommendation.NextAction; got != recommend.ActionTryAnother {
			t.Fatalf("index %d action = %q", i, got)
		}
		if s, err = e.TryAnother(s); err != nil {
			t.Fatal(err)
		}
	}
	rv := e.Screen(s).Recommendation
	if s.RecommendationIndex != 2 || rv.NextAction != recommend.ActionStartOver || rv.NextLabel != "Start Over" {
		t.Fatalf("index %d view = %+v", s.RecommendationIndex, rv)
	}
	if rv.MistakeID != "dirty_base_metal" {
		t.Errorf("third suggestion mistake = %q, want dirty_base_metal", rv.MistakeID)
	}

	s, err = e.TryAnother(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.Current != NodeSetup || s.Parameters != nil {
		t.Errorf("try another on last should restart, got %+v", s)
	}
}

func TestSelectThicknessDiscardsManualEdits(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.NewSession()
	s = e.SetParameter(s, params.KeyVoltage, "27")
	s, err := e.SelectThickness(s, "1/4")
	if err != nil {
		t.Fatal(err)
	}
	if s.Parameters.Voltage != 22 || s.Parameters.WireSpeed != 300 || s.Parameters.MetalThickness != "1/4" {
		t.Errorf("parameters = %+v", s.Parameters)
	}
	if _, err := e.SelectThickness(s, "1/2"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("err = %v, want ErrPresetNotFound", err)
	}
}

func TestSetParameterKeepsPreviousOnBadInput(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.SetParameter(e.NewSession(), params.KeyVoltage, "19.5")
	s = e.SetParameter(s, params.KeyVoltage, "abc")
	s = e.SetParameter(s, params.KeyVoltage, "")
	if s.Parameters.Voltage != 19.5 {
		t.Errorf("voltage = %v, want 19.5", s.Parameters.Voltage)
	}
	s = e.ToggleTried(s, "custom_fix")
	if !s.Parameters.Tried["custom_fix"] {
		t.Error("unknown id should be added as tried")
	}
}

func TestUnknownNodeRendersErrorScreen(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	for _, id := range []string{"defects/ghost", "defects/porosity/voltage_too_high_undercut", "elsewhere", "defects/a/b/c"} {
		s := Session{Position: Position{History: []string{NodeSetup}, Current: id}}
		scr := e.Screen(s)
		if scr.Kind != ScreenError || scr.Title != "Node not found" {
			t.Errorf("%s: screen = %q %q", id, scr.Kind, scr.Title)
		}
		if _, err := e.Choose(s, "x"); !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("%s: Choose err = %v", id, err)
		}
	}
}

func TestChooseUnknownChoice(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.Setup(e.NewSession(), params.Default())
	got, err := e.Choose(s, "nonsense")
	if !errors.Is(err, ErrChoiceNotFound) {
		t.Fatalf("err = %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("failed choose changed the session:\n%s", diff)
	}
}

func TestRecommendationActionsOffRecommendationScreen(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.Setup(e.NewSession(), params.Default())
	if _, err := e.Accept(s); !errors.Is(err, ErrNoRecommendation) {
		t.Errorf("Accept err = %v", err)
	}
	if _, err := e.TryAnother(e.NewSession()); !errors.Is(err, ErrNoRecommendation) {
		t.Errorf("TryAnother err = %v", err)
	}
}

func TestTreeWalk(t *testing.T) {
	e := treeEngine(t)
	s := e.Setup(e.NewSession(), params.Default())
	if scr := e.Screen(s); scr.Kind != ScreenQuestion || len(scr.Choices) == 0 {
		t.Fatalf("start screen = %+v", scr)
	}

	s, err := e.Choose(s, "burn_through")
	if err != nil {
		t.Fatal(err)
	}
	s, err = e.Choose(s, "thin")
	if err != nil {
		t.Fatal(err)
	}
	scr := e.Screen(s)
	if scr.Kind != ScreenDiagnosis || scr.Title != "Too Much Heat for Thin Metal" {
		t.Fatalf("screen = %q %q", scr.Kind, scr.Title)
	}
	if scr.Recommendation.ParameterBadge != "Parameter: voltage" {
		t.Errorf("badge = %q", scr.Recommendation.ParameterBadge)
	}

	s, _ = e.TryAnother(s)
	scr = e.Screen(s)
	if scr.Recommendation.Suggestion.Text != "Decrease wire speed from 200 IPM to 180 IPM" {
		t.Errorf("second suggestion = %q", scr.Recommendation.Suggestion.Text)
	}
	if scr.Recommendation.ParameterBadge != "Parameter: wire feed speed" {
		t.Errorf("badge = %q", scr.Recommendation.ParameterBadge)
	}

	s, err = e.Accept(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.Parameters.WireSpeed != 180 || !s.Parameters.Tried["wire_feed_speed"] {
		t.Errorf("parameters after accept = %+v", s.Parameters)
	}
}

func TestTreeBackFromStartReturnsToSetup(t *testing.T) {
	e := treeEngine(t)
	s := e.Setup(e.NewSession(), params.Default())
	s = e.Back(s)
	if s.Current != NodeSetup {
		t.Errorf("current = %q, want setup", s.Current)
	}
	again := e.Back(s)
	if diff := cmp.Diff(s, again); diff != "" {
		t.Errorf("Back on empty history changed the session:\n%s", diff)
	}
	if scr := e.Screen(s); scr.Kind != ScreenSetup || !strings.Contains(strings.Join(scr.ThicknessOptions, ","), "1/4") {
		t.Errorf("setup screen = %+v", scr)
	}
}

func TestDispatch(t *testing.T) {
	e, _ := catalogEngine(t, DefaultOptions())
	s := e.NewSession()
	steps := []Action{
		{Type: ActionSelectThickness, Thickness: "3/16"},
		{Type: ActionSetup},
		{Type: ActionChoose, ChoiceID: "convex_bead"},
		{Type: ActionChoose, ChoiceID: "wire_too_fast_convex"},
		{Type: ActionAccept},
	}
	var err error
	for _, a := range steps {
		if s, err = e.Dispatch(s, a); err != nil {
			t.Fatalf("%s: %v", a.Type, err)
		}
	}
	if s.Parameters.WireSpeed != 230 || s.Parameters.Voltage != 20 {
		t.Errorf("parameters = %+v, want 20V / 230 IPM", s.Parameters)
	}
	if _, err := e.Dispatch(s, Action{Type: "jump"}); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}
