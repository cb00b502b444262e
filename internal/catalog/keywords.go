package catalog

import (
	"sort"

	"github.com/muarrikhyazka/hsearch/pkg/utils"
)

// stopwordsEN and stopwordsID filter connective words out of derived keyword
// sets so the vocabulary stays focused on content terms.
var stopwordsEN = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "is": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "other": {}, "than": {}, "the": {}, "their": {},
	"there": {}, "thereof": {}, "to": {}, "whether": {}, "with": {},
}

var stopwordsID = map[string]struct{}{
	"atau": {}, "dan": {}, "dari": {}, "dengan": {}, "di": {}, "ke": {},
	"lain": {}, "lainnya": {}, "pada": {}, "selain": {}, "untuk": {},
	"yang": {},
}

// DeriveKeywords produces the normalized keyword set for one language's
// description text: tokens of length >= 2 with stopwords removed, sorted and
// deduplicated. The result is order-irrelevant; sorting keeps it stable.
func DeriveKeywords(text, lang string) []string {
	stop := stopwordsEN
	if lang == "id" {
		stop = stopwordsID
	}
	seen := make(map[string]struct{})
	for _, tok := range utils.Tokenize(text) {
		if len(tok) < 2 {
			continue
		}
		if _, skip := stop[tok]; skip {
			continue
		}
		seen[tok] = struct{}{}
	}
	keywords := make([]string, 0, len(seen))
	for k := range seen {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}
