package sentiment

// Valence lexicon on the usual -4..+4 scale. The list is tuned for
// short policy-related social posts rather than general coverage;
// anything absent scores zero.
var valences = map[string]float64{
	"amazing":       2.8,
	"accessible":    1.3,
	"appreciate":    1.8,
	"awful":         -2.9,
	"bad":           -2.5,
	"benefit":       2.0,
	"benefiting":    2.0,
	"best":          3.2,
	"better":        1.9,
	"boost":         1.7,
	"boosting":      1.7,
	"broken":        -1.9,
	"clean":         1.6,
	"corrupt":       -2.6,
	"corruption":    -2.6,
	"crisis":        -2.3,
	"delay":         -1.3,
	"delayed":       -1.4,
	"disappointing": -2.2,
	"easier":        1.5,
	"effective":     2.1,
	"excellent":     2.7,
	"fail":          -2.3,
	"failed":        -2.3,
	"failure":       -2.6,
	"fraud":         -2.8,
	"good":          1.9,
	"great":         3.1,
	"happy":         2.7,
	"hate":          -2.7,
	"help":          1.7,
	"helped":        1.7,
	"helpful":       1.8,
	"helping":       1.7,
	"helps":         1.7,
	"improve":       1.9,
	"improved":      2.1,
	"improving":     2.0,
	"inefficient":   -1.9,
	"love":          3.2,
	"mess":          -2.0,
	"okay":          0.9,
	"poor":          -2.1,
	"positive":      2.3,
	"problem":       -1.7,
	"problems":      -1.7,
	"progress":      1.8,
	"sad":           -2.1,
	"scam":          -2.6,
	"slow":          -1.2,
	"success":       2.7,
	"successful":    2.8,
	"terrible":      -3.1,
	"thanks":        1.9,
	"useless":       -1.8,
	"waste":         -1.8,
	"wasted":        -2.0,
	"welcome":       2.0,
	"wonderful":     2.7,
	"worse":         -2.1,
	"worst":         -3.1,
	"wrong":         -2.1,
}

// Apostrophes are stripped during normalization, so contracted forms
// appear without them.
var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"neither": {},
	"nor":     {},
	"cannot":  {},
	"cant":    {},
	"dont":    {},
	"doesnt":  {},
	"didnt":   {},
	"isnt":    {},
	"wasnt":   {},
	"wont":    {},
	"without": {},
	"hardly":  {},
	"barely":  {},
}

var boosters = map[string]float64{
	"very":       0.293,
	"really":     0.293,
	"extremely":  0.293,
	"absolutely": 0.293,
	"highly":     0.293,
	"truly":      0.293,
	"so":         0.293,
	"slightly":   -0.293,
	"somewhat":   -0.293,
	"marginally": -0.293,
	"rather":     -0.293,
}
