package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinRulesAreValid(t *testing.T) {
	for _, r := range Builtin() {
		if err := r.Check(); err != nil {
			t.Fatalf("builtin rule %s invalid: %v", r.ID, err)
		}
	}
}

func TestBuiltinIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range BuiltinIDs() {
		if seen[id] {
			t.Fatalf("duplicate builtin rule id %s", id)
		}
		seen[id] = true
	}
}

func TestNewBuiltinRegistry(t *testing.T) {
	reg := NewBuiltin()
	assert.Equal(t, BuiltinVersion, reg.Version())
	assert.NotEmpty(t, reg.All())
	assert.Nil(t, reg.Table())
}

func TestLoadReplacesWholesale(t *testing.T) {
	reg := NewBuiltin()
	payload := []byte(`
version: "1.1.0"
rules:
  - id: test-key
    category: generic
    kind: regex
    pattern: "TESTKEY[0-9]{8}"
    base_risk: high
`)
	rejected, err := reg.Load(payload)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, reg.All(), 1)
	assert.Equal(t, "test-key", reg.All()[0].ID)
	assert.Equal(t, "1.1.0", reg.Version())
}

func TestLoadRejectsBadRuleKeepsRest(t *testing.T) {
	reg := NewBuiltin()
	payload := []byte(`
version: "1.1.0"
rules:
  - id: broken
    category: generic
    kind: regex
    pattern: "([unclosed"
    base_risk: high
  - id: bad-category
    category: no-such-category
    kind: regex
    pattern: "x+"
    base_risk: low
  - id: ok-rule
    category: generic
    kind: regex
    pattern: "OK[0-9]{4}"
    base_risk: low
`)
	rejected, err := reg.Load(payload)
	require.NoError(t, err)
	assert.Len(t, rejected, 2)
	for _, rerr := range rejected {
		assert.True(t, errors.Is(rerr, ErrInvalidRule))
	}
	require.Len(t, reg.All(), 1)
	assert.Equal(t, "ok-rule", reg.All()[0].ID)
}

func TestLoadRejectsDowngrade(t *testing.T) {
	reg := NewBuiltin()
	payload := []byte(`
version: "0.9.0"
rules:
  - id: ok-rule
    category: generic
    kind: regex
    pattern: "OK[0-9]{4}"
    base_risk: low
`)
	_, err := reg.Load(payload)
	require.Error(t, err)
	assert.Equal(t, BuiltinVersion, reg.Version())
	assert.NotEmpty(t, reg.All())
}

func TestLoadRejectsEmptySet(t *testing.T) {
	reg := NewBuiltin()
	_, err := reg.Load([]byte(`{version: "2.0.0", rules: []}`))
	require.Error(t, err)
	assert.Equal(t, BuiltinVersion, reg.Version())
}

func TestLoadScoreTable(t *testing.T) {
	reg := NewBuiltin()
	payload := []byte(`
version: "1.2.0"
score_table:
  critical:
    low: high
    medium: critical
    high: critical
rules:
  - id: ok-rule
    category: generic
    kind: regex
    pattern: "OK[0-9]{4}"
    base_risk: low
`)
	rejected, err := reg.Load(payload)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.NotNil(t, reg.Table())
	assert.Equal(t, "high", string(reg.Table()["critical"]["low"]))
}

func TestLoadUnknownValidatorRejected(t *testing.T) {
	reg := NewBuiltin()
	payload := []byte(`
version: "1.3.0"
rules:
  - id: v-rule
    category: generic
    kind: regex
    pattern: "X[0-9]{4}"
    base_risk: low
    validators: [no-such-validator]
  - id: ok-rule
    category: generic
    kind: regex
    pattern: "OK[0-9]{4}"
    base_risk: low
`)
	rejected, err := reg.Load(payload)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	require.Len(t, reg.All(), 1)
}

func TestStructuralMatcherLookup(t *testing.T) {
	for _, id := range []string{"idn-homoglyph", "suspicious-form", "structured-secret"} {
		if _, ok := StructuralMatcher(id); !ok {
			t.Fatalf("missing structural matcher %s", id)
		}
	}
	if _, ok := StructuralMatcher("nope"); ok {
		t.Fatal("unexpected matcher")
	}
}
