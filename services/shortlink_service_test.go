package services

import (
	"strings"
	"testing"

	"github.com/Dead0End/foodgram/apperr"
	"github.com/Dead0End/foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomain = "https://foodgram.example.com"

func TestShortLinkRoundTrip(t *testing.T) {
	db := newTestDB(t)
	links := NewShortLinkService(db, testDomain)
	author := seedUser(t, db, "author")

	// Pin the id so the code under test is deterministic.
	recipe := models.Recipe{
		ID:          42,
		AuthorID:    author.ID,
		Name:        "Borscht",
		Text:        "Simmer.",
		Image:       "img",
		CookingTime: 90,
	}
	require.NoError(t, db.Create(&recipe).Error)

	link, err := links.Generate(recipe.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, testDomain+"/s/"), link)

	code := strings.TrimPrefix(link, testDomain+"/s/")
	resolved, err := links.Resolve(code)
	require.NoError(t, err)
	assert.EqualValues(t, 42, resolved)
}

func TestShortLinkGenerateIsStable(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db, 32767)
	links := NewShortLinkService(db, testDomain)
	author := seedUser(t, db, "author")

	recipe, err := recipes.Create(author.ID, validInput(t, db))
	require.NoError(t, err)

	first, err := links.Generate(recipe.ID)
	require.NoError(t, err)
	second, err := links.Generate(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second, "no random state may leak into the code")
}

func TestShortLinkUnknownRecipe(t *testing.T) {
	db := newTestDB(t)
	links := NewShortLinkService(db, testDomain)

	_, err := links.Generate(999999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// A well-formed code whose decoded id does not exist is a 404, not
	// a redirect.
	_, err = links.Resolve("999999")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestShortLinkGarbageCode(t *testing.T) {
	db := newTestDB(t)
	links := NewShortLinkService(db, testDomain)

	for _, code := range []string{"", "!!!", "näh", "aaaaaaaaaaaaaaaaaaaa"} {
		_, err := links.Resolve(code)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "code %q", code)
	}
}

func TestShortLinkCodesAreInjective(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db, 32767)
	links := NewShortLinkService(db, testDomain)
	author := seedUser(t, db, "author")

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		recipe, err := recipes.Create(author.ID, validInput(t, db))
		require.NoError(t, err)
		link, err := links.Generate(recipe.ID)
		require.NoError(t, err)
		assert.False(t, seen[link], "codes must be distinct per recipe")
		seen[link] = true
	}
}
