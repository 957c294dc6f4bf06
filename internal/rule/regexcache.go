package rule

import (
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// regexCacheSize bounds the process-wide compiled-pattern cache. Grammar
// sources rarely intern more than a few hundred distinct terminal
// patterns even across a large translation unit, so this is generous
// headroom rather than a tight budget.
const regexCacheSize = 4096

var (
	regexCacheOnce sync.Once
	regexCache     *lru.Cache[string, *regexp2.Regexp]
)

// sharedRegexCache lazily builds the process-wide compiled-regex cache
// the first time any regex terminal compiles a pattern, then never
// rebuilds it — the "lazy initialization only" sharing rule the spec's
// concurrency model requires for the terminal engine (spec §4.5, §5).
// Using a bounded LRU instead of an unbounded map is grounded on
// open-policy-agent-opa's habit of reaching for hashicorp/golang-lru for
// exactly this kind of process-wide compiled-artifact cache.
func sharedRegexCache() *lru.Cache[string, *regexp2.Regexp] {
	regexCacheOnce.Do(func() {
		c, err := lru.New[string, *regexp2.Regexp](regexCacheSize)
		if err != nil {
			panic(fmt.Sprintf("rule: building regex cache: %v", err))
		}
		regexCache = c
	})
	return regexCache
}

// compileAnchored compiles pattern anchored to the start of whatever
// prefix it's later matched against (the engine prepends "^", per spec
// §4.5: "patterns are anchored to the current cursor"), using
// dlclark/regexp2 rather than Go's standard regexp because spec §4.5
// requires lookaround and backreference support that RE2 cannot express.
func compileAnchored(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	cacheKeyStr := pattern
	if ignoreCase {
		cacheKeyStr = "(?i)" + pattern
	}
	cache := sharedRegexCache()
	if re, ok := cache.Get(cacheKeyStr); ok {
		return re, nil
	}

	opts := regexp2.None
	if ignoreCase {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile("^(?:"+pattern+")", opts)
	if err != nil {
		return nil, err
	}
	cache.Add(cacheKeyStr, re)
	return re, nil
}
