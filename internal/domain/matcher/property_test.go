package matcher

import (
	"reflect"
	"strings"
	"testing"

	"github.com/corey/faq/internal/domain/kb"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// questionWords draws query words from the default KB so generated inputs
// actually hit entries instead of always falling back.
var questionWords = []interface{}{
	"do", "you", "offer", "24", "7", "monitoring", "guards", "licensed", "access",
	"logs", "compliance", "audit", "site", "client", "dashboard", "login", "soc",
	"emergency", "weather", "today", "incident", "report", "what", "how",
}

// genQueryWords generates word lists drawn from questionWords. The type
// override makes SliceOf produce []string instead of []interface{}.
func genQueryWords() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(questionWords...), reflect.TypeOf(""))
}

func TestGenQueryWords_ProducesStrings(t *testing.T) {
	sample, ok := genQueryWords().Sample()
	if !ok {
		t.Fatal("generator produced no sample")
	}
	words, ok := sample.([]string)
	if !ok {
		t.Fatalf("sample is %T, want []string", sample)
	}
	for _, w := range words {
		if Normalize(w) == "" {
			t.Errorf("generated word %q normalizes to nothing", w)
		}
	}
}

func TestProperty_AnswerIsWellFormed(t *testing.T) {
	m := New(kb.Default())
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any input yields a matched or fallback result", prop.ForAll(
		func(s string) bool {
			res := m.Answer(s)
			if res.Matched() {
				return res.Score >= Threshold && res.Text != "" && res.Provenance.EntryID != ""
			}
			return res.Provenance.Kind == Fallback && res.Score == 0 && res.Text == FallbackMessage
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestProperty_AnswerIsDeterministic(t *testing.T) {
	m := New(kb.Default())
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("same input, same result", prop.ForAll(
		func(words []string) bool {
			q := strings.Join(words, " ")
			return m.Answer(q) == m.Answer(q)
		},
		genQueryWords(),
	))

	properties.TestingRun(t)
}

func TestProperty_CaseAndPunctuationInsensitive(t *testing.T) {
	m := New(kb.Default())
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("uppercasing and punctuating does not change the answer", prop.ForAll(
		func(words []string) bool {
			plain := strings.Join(words, " ")
			loud := strings.ToUpper(strings.Join(words, " ?! ")) + "???"
			return m.Answer(plain) == m.Answer(loud)
		},
		genQueryWords(),
	))

	properties.TestingRun(t)
}

func TestProperty_ScoreMatchesAnswer(t *testing.T) {
	k := kb.Default()
	m := New(k)
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("matched score is the first maximal per-entry Score", prop.ForAll(
		func(words []string) bool {
			q := strings.Join(words, " ")
			best, bestID := 0, ""
			for _, e := range k.Entries() {
				if s := Score(q, e); s > best {
					best, bestID = s, e.ID
				}
			}
			res := m.Answer(q)
			if best < Threshold {
				return !res.Matched()
			}
			return res.Score == best && res.Provenance.EntryID == bestID
		},
		genQueryWords(),
	))

	properties.TestingRun(t)
}
