package dictionary_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wordbook/api/internal/dictionary"
	mockdictionary "github.com/wordbook/api/internal/mocks/dictionary"
)

type memoryCache struct {
	mu         sync.Mutex
	data       map[string]string
	ttls       map[string]time.Duration
	failGet    bool
	failSet    bool
	failDelete bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", false
	}
	v, ok := c.data[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key, value string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return false
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return true
}

func (c *memoryCache) Delete(_ context.Context, key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDelete {
		return false
	}
	delete(c.data, key)
	return true
}

func helloEntries() []dictionary.RawEntry {
	text := "/həˈləʊ/"
	return []dictionary.RawEntry{{
		Word:      "hello",
		Phonetic:  &text,
		Phonetics: []dictionary.RawPhonetic{{Text: &text}},
		Meanings: []dictionary.RawMeaning{{
			PartOfSpeech: "exclamation",
			Definitions:  []dictionary.RawDefinition{{Definition: "Used as a greeting."}},
		}},
		SourceURLs: []string{"https://en.wiktionary.org/wiki/hello"},
	}}
}

func TestSearchWord_MissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), "hello").Return(helloEntries(), nil).Times(1)

	cache := newMemoryCache()
	var observed []bool
	svc := dictionary.NewService(cache, provider, time.Hour, nil,
		dictionary.WithObserver(func(hit bool) { observed = append(observed, hit) }))

	first, err := svc.SearchWord(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, first.FromCache)
	assert.Equal(t, time.Hour, cache.ttls["dictionary:word:hello"])

	second, err := svc.SearchWord(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Definition, second.Definition)

	assert.Equal(t, []bool{false, true}, observed)
}

func TestSearchWord_KeyIsCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), "Hello").Return(helloEntries(), nil)

	cache := newMemoryCache()
	svc := dictionary.NewService(cache, provider, time.Hour, nil)

	_, err := svc.SearchWord(context.Background(), "Hello")
	require.NoError(t, err)

	res, err := svc.SearchWord(context.Background(), "HELLO")
	require.NoError(t, err)
	assert.True(t, res.FromCache)
}

func TestSearchWord_CacheFaultIsTransparent(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), "hello").Return(helloEntries(), nil).Times(2)

	cache := newMemoryCache()
	cache.failGet = true
	cache.failSet = true
	svc := dictionary.NewService(cache, provider, time.Hour, nil)

	for i := 0; i < 2; i++ {
		res, err := svc.SearchWord(context.Background(), "hello")
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.FromCache)
		assert.Equal(t, "hello", res.Definition[0].Word)
	}
}

func TestSearchWord_CorruptCacheFallsThrough(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", "{not json"},
		{"null", "null"},
		{"empty array", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mockdictionary.NewMockProvider(ctrl)
			provider.EXPECT().Lookup(gomock.Any(), "hello").Return(helloEntries(), nil)

			cache := newMemoryCache()
			cache.data["dictionary:word:hello"] = tt.payload
			svc := dictionary.NewService(cache, provider, time.Hour, nil)

			res, err := svc.SearchWord(context.Background(), "hello")
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.False(t, res.FromCache)
			require.Len(t, res.Definition, 1)
			assert.Equal(t, "hello", res.Definition[0].Word)
			assert.NotEqual(t, tt.payload, cache.data["dictionary:word:hello"], "fresh result overwrites corrupt entry")
		})
	}
}

func TestSearchWord_UnknownWordNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), "qwzx").Return(nil, nil).Times(2)

	cache := newMemoryCache()
	svc := dictionary.NewService(cache, provider, time.Hour, nil)

	for i := 0; i < 2; i++ {
		res, err := svc.SearchWord(context.Background(), "qwzx")
		require.NoError(t, err)
		assert.Nil(t, res)
	}
	assert.Empty(t, cache.data)
}

func TestSearchWord_ProviderErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)
	provider.EXPECT().Lookup(gomock.Any(), "hello").
		Return(nil, errors.Join(dictionary.ErrProvider, errors.New("status 500")))

	svc := dictionary.NewService(newMemoryCache(), provider, time.Hour, nil)

	res, err := svc.SearchWord(context.Background(), "hello")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, dictionary.ErrProvider)
}

func TestClearWordCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mockdictionary.NewMockProvider(ctrl)

	cache := newMemoryCache()
	cache.data["dictionary:word:hello"] = `[{"word":"hello"}]`
	svc := dictionary.NewService(cache, provider, time.Hour, nil)

	assert.True(t, svc.ClearWordCache(context.Background(), "HELLO"))
	assert.NotContains(t, cache.data, "dictionary:word:hello")

	assert.True(t, svc.ClearWordCache(context.Background(), "never-cached"))

	cache.failDelete = true
	assert.False(t, svc.ClearWordCache(context.Background(), "hello"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "dictionary:word:hello", dictionary.CacheKey("HeLLo"))
}
