package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbonduro/homelist/internal/domain"
)

func TestBuilderChaining(t *testing.T) {
	p := NewBuilder().
		SetName("John Doe").
		SetEmail("john@example.com").
		SetPassword("secure123").
		SetPreferences(domain.Preferences{"notifications": true, "newsletter": true}).
		AddSavedProperty("1").
		Build()

	assert.Equal(t, "John Doe", p.Name)
	assert.Equal(t, "john@example.com", p.Email)
	assert.Equal(t, "secure123", p.Password)
	assert.Equal(t, domain.Preferences{"notifications": true, "newsletter": true}, p.Preferences)
	assert.Equal(t, []string{"1"}, p.SavedProperties)
}

func TestBuilderDefaults(t *testing.T) {
	p := NewBuilder().Build()

	assert.Empty(t, p.Name)
	assert.NotNil(t, p.Preferences)
	assert.NotNil(t, p.SavedProperties)
	assert.Empty(t, p.SavedProperties)
}

func TestBuilderSavedPropertiesAreASet(t *testing.T) {
	p := NewBuilder().
		AddSavedProperty("1").
		AddSavedProperty("2").
		AddSavedProperty("1").
		Build()
	assert.Equal(t, []string{"1", "2"}, p.SavedProperties)

	p = FromProfile(p).RemoveSavedProperty("1").Build()
	assert.Equal(t, []string{"2"}, p.SavedProperties)
}

func TestBuildReturnsIndependentValue(t *testing.T) {
	prefs := domain.Preferences{"newsletter": true}
	b := NewBuilder().SetName("Amina").SetPreferences(prefs).AddSavedProperty("1")

	first := b.Build()

	b.SetName("Baraka").AddSavedProperty("2")
	prefs["newsletter"] = false

	assert.Equal(t, "Amina", first.Name)
	assert.Equal(t, []string{"1"}, first.SavedProperties)
	assert.True(t, first.Preferences["newsletter"])

	second := b.Build()
	assert.Equal(t, "Baraka", second.Name)
	assert.Equal(t, []string{"1", "2"}, second.SavedProperties)

	second.SavedProperties[0] = "changed"
	assert.Equal(t, []string{"1", "2"}, b.Build().SavedProperties)
}

func TestFromProfileCopies(t *testing.T) {
	orig := domain.UserProfile{Name: "Amina", SavedProperties: []string{"3"}}

	updated := FromProfile(orig).AddSavedProperty("4").Build()

	assert.Equal(t, []string{"3"}, orig.SavedProperties)
	assert.Equal(t, []string{"3", "4"}, updated.SavedProperties)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("john@example.com"))
	assert.False(t, ValidateEmail("john@example"))
	assert.False(t, ValidateEmail("john example.com"))
	assert.False(t, ValidateEmail(""))
}
