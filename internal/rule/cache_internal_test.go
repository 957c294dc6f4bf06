package rule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstractparser/pegc/internal/stream"
)

func TestCacheSizeGrowsPerDistinctSlot(t *testing.T) {
	s := NewCharStream(stream.New("aaa"))
	a := NewSubstring("a", false, "a")

	require.Equal(t, 0, s.cache.Size())
	s.CachedApply(a)
	require.Equal(t, 1, s.cache.Size())

	s.Src.Restore(1)
	s.CachedApply(a)
	require.Equal(t, 2, s.cache.Size())

	s.Src.Restore(0)
	s.CachedApply(a)
	require.Equal(t, 2, s.cache.Size(), "re-attempting at a previously seen position must not grow the table")
}

func TestCachedApplyHonorsCacheableFalse(t *testing.T) {
	calls := 0
	s := NewCharStream(stream.New("aaa"))
	vec := NewVecChoice("v", func() []Rule {
		calls++
		return []Rule{NewSubstring("a", false, "a")}
	})

	s.CachedApply(vec)
	s.Src.Restore(0)
	s.CachedApply(vec)

	require.Equal(t, 2, calls, "non-cacheable rules must re-run Transfer on every attempt")
	require.Equal(t, 0, s.cache.Size())
}

func TestSharedRegexCacheReusesCompiledPattern(t *testing.T) {
	cache := sharedRegexCache()
	sizeBefore := cache.Len()

	_, err := compileAnchored(`[0-9]+`, false)
	require.NoError(t, err)
	sizeAfterFirst := cache.Len()

	_, err = compileAnchored(`[0-9]+`, false)
	require.NoError(t, err)
	sizeAfterSecond := cache.Len()

	require.Equal(t, sizeAfterFirst, sizeAfterSecond)
	require.GreaterOrEqual(t, sizeAfterFirst, sizeBefore)
}
