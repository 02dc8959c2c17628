package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_ErrorsHiddenUntilInteraction(t *testing.T) {
	f := New(
		FieldDef{Name: "busNumber", Label: "Bus number", Rules: []Rule{Required()}},
		FieldDef{Name: "busRidePrice", Label: "Price", Rules: PriceRules},
	)

	assert.False(t, f.Valid())
	assert.Equal(t, "Bus number is required", f.FieldError("busNumber"))
	assert.False(t, f.IsFieldInvalid("busNumber"))
	assert.Empty(t, f.Errors())

	f.Touch("busNumber")
	assert.True(t, f.IsFieldInvalid("busNumber"))
	assert.False(t, f.IsFieldInvalid("busRidePrice"))

	f.MarkAllTouched()
	errs := f.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, FieldError{Field: "busNumber", Message: "Bus number is required"}, errs[0])
	assert.Equal(t, "busRidePrice", errs[1].Field)
}

func TestForm_SetMarksDirty(t *testing.T) {
	f := New(FieldDef{Name: "code", Rules: []Rule{Required(), MinLength(3)}})

	require.NoError(t, f.Set("code", "AB"))
	assert.True(t, f.IsFieldInvalid("code"))
	assert.Equal(t, "code must be at least 3 characters", f.DisplayError("code"))

	require.NoError(t, f.Set("code", "ABC"))
	assert.True(t, f.Valid())

	require.ErrorIs(t, f.Set("missing", "x"), ErrUnknownField)
}

func TestForm_PatchDoesNotMarkDirty(t *testing.T) {
	f := New(FieldDef{Name: "code", Rules: []Rule{MinLength(3)}})

	require.NoError(t, f.Patch("code", "AB"))
	assert.Equal(t, "AB", f.Value("code"))
	assert.False(t, f.IsFieldInvalid("code"))
}

func TestForm_Reset(t *testing.T) {
	f := New(
		FieldDef{Name: "minPrice", Initial: "0", Rules: []Rule{MinNumber(0)}},
		FieldDef{Name: "line", Rules: []Rule{Required()}},
	)

	require.NoError(t, f.Set("minPrice", "-5"))
	require.NoError(t, f.Set("line", "Express"))
	f.MarkAllTouched()
	assert.True(t, f.IsFieldInvalid("minPrice"))

	f.Reset()
	assert.Equal(t, map[string]string{"minPrice": "0", "line": ""}, f.Values())
	assert.False(t, f.IsFieldInvalid("line"))
	assert.Equal(t, []string{"minPrice", "line"}, f.Fields())
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		value string
		want  string
	}{
		{"required empty", Required(), "", "Field is required"},
		{"required spaces", Required(), "   ", "Field is required"},
		{"required ok", Required(), "x", ""},
		{"min length skips empty", MinLength(3), "", ""},
		{"min length counts runes", MinLength(3), "Сочи", ""},
		{"min length short", MinLength(3), "ab", "Field must be at least 3 characters"},
		{"max length long", MaxLength(4), "ABCDE", "Field must not exceed 4 characters"},
		{"min length ignores padding", MinLength(2), " a ", "Field must be at least 2 characters"},
		{"max length ignores padding", MaxLength(4), " sof ", ""},
		{"email bad", Email(), "john@", "Please enter a valid email address"},
		{"email ok", Email(), "john@example.com", ""},
		{"min number negative", MinNumber(0), "-1", "Field must be at least 0"},
		{"min number not a number", MinNumber(0), "abc", "Field must be a number"},
		{"min number ok", MinNumber(0), "0", ""},
		{"one of bad", OneOf("bus", "train"), "ship", "Field must be one of: bus, train"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule("Field", tt.value))
		})
	}
}

func TestPatterns(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		value string
		valid bool
	}{
		{"date", DateRules, "2026-10-15", true},
		{"date with suffix", DateRules, "x2026-10-15", false},
		{"date wrong separator", DateRules, "2026/10/15", false},
		{"time", TimeRules, "09:05", true},
		{"time single digit hour", TimeRules, "9:05", true},
		{"time 24h overflow", TimeRules, "24:00", false},
		{"time minutes overflow", TimeRules, "12:60", false},
		{"duration hours and minutes", DurationRules, "2h 30m", true},
		{"duration without space", DurationRules, "2h30m", true},
		{"duration hours only", DurationRules, "12h", true},
		{"duration minutes only", DurationRules, "30m", false},
		{"duration trailing garbage", DurationRules, "2h 30m later", false},
		{"price integer", PriceRules, "100", true},
		{"price two decimals", PriceRules, "99.99", true},
		{"price three decimals", PriceRules, "9.999", false},
		{"price negative", PriceRules, "-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(FieldDef{Name: "v", Rules: tt.rules})
			require.NoError(t, f.Set("v", tt.value))
			assert.Equal(t, tt.valid, f.Valid(), f.FieldError("v"))
		})
	}
}

func TestAllOf(t *testing.T) {
	rule := AllOf("weak", HasLower, HasUpper, HasDigit, HasSpecial)

	assert.Equal(t, "weak", rule("password", "abc"))
	assert.Equal(t, "weak", rule("password", "Abcdefg1"))
	assert.Equal(t, "", rule("password", "Abcdef1!"))
	assert.Equal(t, "", rule("password", ""))
}
