// Package porter implements the Porter (1980) stemming algorithm as
// published in Porter, 1980, "An algorithm for suffix stripping",
// Program, Vol. 14, no. 3, pp 130-137.
//
// This is deliberately the 1980 algorithm and not its later Porter2/
// Snowball revision: the two disagree on a number of words, and
// textdex's fixed test vectors are written against the 1980 rules.
//
// Steps 2, 3 and 4 are expressed as ordered tables of (suffix,
// replacement, condition) rules rather than the original's cascade of
// nested else-if suffix checks, one rule winning per step. This reads
// closer to the published algorithm's own rule listing than to any
// particular source encoding of it.
package porter

import "strings"

type stemmer struct {
	b []byte
	j int
	k int
}

func (z *stemmer) consonant(pos int) bool {
	if pos < 0 || pos >= len(z.b) {
		return false
	}
	switch z.b[pos] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		if pos == 0 {
			return true
		}
		return z.vowel(pos - 1)
	}
	return true
}

func (z *stemmer) vowel(pos int) bool {
	return !z.consonant(pos)
}

// m measures the number of vowel-consonant (VC) sequences between
// position 0 and z.j: <c><v> gives 0, <c>vc<v> gives 1, <c>vcvc<v>
// gives 2, and so on. Unlike a division-based shortcut, it walks the
// word directly, so there is no integer-truncation hazard.
func (z *stemmer) m() int {
	i, n := 0, 0
	for i <= z.j && z.consonant(i) {
		i++
	}
	i++
	for {
		for i <= z.j && !z.consonant(i) {
			i++
		}
		if i > z.j {
			return n
		}
		i++
		n++
		for i <= z.j && z.consonant(i) {
			i++
		}
		if i > z.j {
			return n
		}
		i++
	}
}

// vowelInStem reports whether 0..j contains a vowel.
func (z *stemmer) vowelInStem() bool {
	for i := 0; i <= z.j; i++ {
		if !z.consonant(i) {
			return true
		}
	}
	return false
}

// doubleConsonant reports whether j-1,j hold the same consonant twice.
func (z *stemmer) doubleConsonant(j int) bool {
	if j < 1 || z.b[j] != z.b[j-1] {
		return false
	}
	return z.consonant(j)
}

// cvc reports whether i-2,i-1,i form consonant-vowel-consonant, and
// the final consonant is not w, x or y. Used to decide whether a
// trailing e should be restored after suffix removal.
func (z *stemmer) cvc(i int) bool {
	if i < 2 || !z.consonant(i) || z.consonant(i-1) || !z.consonant(i-2) {
		return false
	}
	switch z.b[i] {
	case 'w', 'x', 'y':
		return false
	}
	return true
}

// ends reports whether the word (0..k) ends with s, and on success
// sets j to the index just before the matched suffix.
func (z *stemmer) ends(s string) bool {
	n := len(s)
	if n > z.k+1 {
		return false
	}
	if string(z.b[z.k+1-n:z.k+1]) != s {
		return false
	}
	z.j = z.k - n
	return true
}

// setTo replaces everything after j with s and updates k.
func (z *stemmer) setTo(s string) {
	z.b = append(z.b[:z.j+1], s...)
	z.k = len(z.b) - 1
}

type rule struct {
	suffix      string
	replacement string
	cond        func(z *stemmer) bool
}

// applyRules runs r in order against the word, applies the replacement
// of the first rule whose suffix matches and whose condition (if any)
// holds, and stops. None matching leaves the word untouched.
func (z *stemmer) applyRules(rules []rule) {
	for _, ru := range rules {
		if !z.ends(ru.suffix) {
			continue
		}
		if ru.cond == nil || ru.cond(z) {
			z.setTo(ru.replacement)
		}
		return
	}
}

func mPositive(z *stemmer) bool { return z.m() > 0 }
func mAbove1(z *stemmer) bool   { return z.m() > 1 }

// step1ab strips plurals and -ed/-ing endings.
//
//	caresses -> caress   ponies -> poni   ties -> ti
//	feed -> feed   agreed -> agree   matting -> mat
//	mating -> mate   meeting -> meet   milling -> mill
func (z *stemmer) step1ab() {
	if z.b[z.k] == 's' {
		switch {
		case z.ends("sses"):
			z.k -= 2
		case z.ends("ies"):
			z.setTo("i")
		default:
			if z.b[z.k-1] != 's' {
				z.k--
			}
		}
	}

	switch {
	case z.ends("eed"):
		if z.m() > 0 {
			z.k--
		}
		return
	case z.ends("ed"), z.ends("ing"):
		if !z.vowelInStem() {
			return
		}
	default:
		return
	}

	z.k = z.j
	switch {
	case z.ends("at"):
		z.setTo("ate")
	case z.ends("bl"):
		z.setTo("ble")
	case z.ends("iz"):
		z.setTo("ize")
	case z.doubleConsonant(z.k):
		z.k--
		switch z.b[z.k] {
		case 'l', 's', 'z':
			z.k++
		}
	default:
		if z.m() == 1 && z.cvc(z.k) {
			z.setTo("e")
		}
	}
}

// step1c turns a terminal y into i when the stem holds another vowel.
func (z *stemmer) step1c() {
	if z.ends("y") && z.vowelInStem() {
		z.b[z.k] = 'i'
	}
}

var step2Rules = []rule{
	{"ational", "ate", mPositive},
	{"tional", "tion", mPositive},
	{"enci", "ence", mPositive},
	{"anci", "ance", mPositive},
	{"izer", "ize", mPositive},
	{"abli", "able", mPositive},
	{"alli", "al", mPositive},
	{"entli", "ent", mPositive},
	{"eli", "e", mPositive},
	{"ousli", "ous", mPositive},
	{"ization", "ize", mPositive},
	{"ation", "ate", mPositive},
	{"ator", "ate", mPositive},
	{"alism", "al", mPositive},
	{"iveness", "ive", mPositive},
	{"fulness", "ful", mPositive},
	{"ousness", "ous", mPositive},
	{"aliti", "al", mPositive},
	{"iviti", "ive", mPositive},
	{"biliti", "ble", mPositive},
}

// step2 maps double suffixes to single ones, e.g. -ization (-ize plus
// -ation) maps to -ize, provided the stem before the suffix has m > 0.
func (z *stemmer) step2() {
	if z.k == 0 {
		return
	}
	z.applyRules(step2Rules)
}

var step3Rules = []rule{
	{"icate", "ic", mPositive},
	{"ative", "", mPositive},
	{"alize", "al", mPositive},
	{"iciti", "ic", mPositive},
	{"ical", "ic", mPositive},
	{"ful", "", mPositive},
	{"ness", "", mPositive},
}

// step3 handles -ic-, -full, -ness and similar endings.
func (z *stemmer) step3() {
	z.applyRules(step3Rules)
}

var step4Rules = []rule{
	{"al", "", mAbove1},
	{"ance", "", mAbove1},
	{"ence", "", mAbove1},
	{"er", "", mAbove1},
	{"ic", "", mAbove1},
	{"able", "", mAbove1},
	{"ible", "", mAbove1},
	{"ant", "", mAbove1},
	{"ement", "", mAbove1},
	{"ment", "", mAbove1},
	{"ent", "", mAbove1},
	{"ion", "", func(z *stemmer) bool {
		return z.m() > 1 && (z.b[z.j] == 's' || z.b[z.j] == 't')
	}},
	{"ou", "", mAbove1},
	{"ism", "", mAbove1},
	{"ate", "", mAbove1},
	{"iti", "", mAbove1},
	{"ous", "", mAbove1},
	{"ive", "", mAbove1},
	{"ize", "", mAbove1},
}

// step4 removes -ant, -ence and similar endings in a <c>vcvc<v> context.
func (z *stemmer) step4() {
	if z.k == 0 {
		return
	}
	z.applyRules(step4Rules)
}

// step5a drops a final -e when m > 1, or m == 1 and the stem does not
// end in consonant-vowel-consonant.
func (z *stemmer) step5a() {
	z.j = z.k
	if z.b[z.k] != 'e' {
		return
	}
	m := z.m()
	if m > 1 || (m == 1 && !z.cvc(z.k-1)) {
		z.k--
	}
}

// step5b turns a trailing double l into a single l when m > 1.
func (z *stemmer) step5b() {
	if z.b[z.k] == 'l' && z.doubleConsonant(z.k) && z.m() > 1 {
		z.k--
	}
}

func (z *stemmer) run(word []byte) []byte {
	z.b = word
	z.j = 0
	z.k = len(word) - 1

	if z.k > 1 {
		z.step1ab()
		z.step1c()
		z.step2()
		z.step3()
		z.step4()
		z.step5a()
		z.step5b()
	}
	if z.k < 0 {
		return z.b[:0]
	}
	return z.b[:z.k+1]
}

// Stem reduces word to its Porter stem. The input is lower-cased first;
// callers that already normalize text (see internal/normalize) pass
// already-lower-case tokens, so this is a cheap no-op in the common
// case. Stemming never lengthens a word.
func Stem(word string) string {
	if word == "" {
		return ""
	}
	var z stemmer
	b := []byte(strings.ToLower(word))
	return string(z.run(b))
}
