package porter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStemFixedVectors(t *testing.T) {
	cases := map[string]string{
		"caresses":      "caress",
		"ponies":        "poni",
		"ties":          "ti",
		"caress":        "caress",
		"cats":          "cat",
		"feed":          "feed",
		"agreed":        "agree",
		"plastered":     "plaster",
		"bled":          "bled",
		"motoring":      "motor",
		"sing":          "sing",
		"conflated":     "conflate",
		"troubled":      "trouble",
		"sized":         "size",
		"hopping":       "hop",
		"tanned":        "tan",
		"falling":       "fall",
		"hissing":       "hiss",
		"fizzed":        "fizz",
		"failing":       "fail",
		"filing":        "file",
		"happy":         "happi",
		"sky":           "sky",
		"relational":    "relate",
		"conditional":   "condition",
		"rational":      "ration",
		"valenci":       "valence",
		"hesitanci":     "hesitance",
		"digitizer":     "digitize",
		"conformabli":   "conformable",
		"radicalli":     "radical",
		"differentli":   "different",
		"vileli":        "vile",
		"analogousli":   "analogous",
		"vietnamization": "vietnamize",
		"predication":   "predicate",
		"operator":      "operate",
		"feudalism":     "feudal",
		"decisiveness":  "decisive",
		"hopefulness":   "hopeful",
		"callousness":   "callous",
		"formaliti":     "formal",
		"sensitiviti":   "sensitive",
		"sensibiliti":   "sensible",
		"triplicate":    "triplic",
		"formative":     "form",
		"formalize":     "formal",
		"electriciti":   "electric",
		"electrical":    "electric",
		"hopeful":       "hope",
		"goodness":      "good",
		"revival":       "reviv",
		"allowance":     "allow",
		"inference":     "infer",
		"airliner":      "airlin",
		"gyroscopic":    "gyroscop",
		"adjustable":    "adjust",
		"defensible":    "defens",
		"irritant":      "irrit",
		"replacement":   "replac",
		"adjustment":    "adjust",
		"dependent":     "depend",
		"adoption":      "adopt",
		"homologou":     "homolog",
		"communism":     "commun",
		"activate":      "activ",
		"angulariti":    "angular",
		"homologous":    "homolog",
		"effective":     "effect",
		"bowdlerize":    "bowdler",
		"probate":       "probat",
		"rate":          "rate",
		"cease":         "ceas",
		"controll":      "control",
		"roll":          "roll",
	}

	for word, want := range cases {
		assert.Equal(t, want, Stem(word), "Stem(%q)", word)
	}
}

func TestStemIdempotent(t *testing.T) {
	words := []string{"caresses", "relational", "triplicate", "controll", "bowdlerize", "sky", "a", ""}
	for _, w := range words {
		once := Stem(w)
		twice := Stem(once)
		assert.Equal(t, once, twice, "stem(stem(%q))", w)
	}
}

func TestStemNeverLengthens(t *testing.T) {
	words := []string{"caresses", "relational", "triplicate", "bowdlerize", "a", "ab"}
	for _, w := range words {
		assert.LessOrEqual(t, len(Stem(w)), len(w))
	}
}

func TestStemEmpty(t *testing.T) {
	assert.Equal(t, "", Stem(""))
}

func TestStemCaseInsensitive(t *testing.T) {
	assert.Equal(t, Stem("caresses"), Stem("CARESSES"))
}
