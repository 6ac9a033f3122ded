// ABOUTME: Tests for proposal data models
// ABOUTME: Validates derived risk severity, tree numbering and enum normalization
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskSeverity(t *testing.T) {
	for impact := ScoreMin; impact <= ScoreMax; impact++ {
		for likelihood := ScoreMin; likelihood <= ScoreMax; likelihood++ {
			r := Risk{ID: NewID(), Impact: impact, Likelihood: likelihood}
			assert.Equal(t, impact*likelihood, r.Severity())
		}
	}
}

func TestRiskSeverityNotSerialized(t *testing.T) {
	data, err := json.Marshal(Risk{ID: "r1", Factor: "delay", Impact: 2, Likelihood: 3})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "severity")
}

func TestNodeNumber(t *testing.T) {
	assert.Equal(t, "1", NodeNumber(0, 0))
	assert.Equal(t, "3", NodeNumber(2, 0))
	assert.Equal(t, "2.1", NodeNumber(1, 1))
	assert.Equal(t, "4.3", NodeNumber(3, 3))
}

func TestTreeNodeOmitsOptionalFields(t *testing.T) {
	data, err := json.Marshal(TreeNode{ID: "n1", Title: "root"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"n1","title":"root","level":0}`, string(data))
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) (string, bool)
		input string
		want  string
		ok    bool
	}{
		{"category korean", ParseCategory, "운영비", CategoryOperations, true},
		{"category english", ParseCategory, " Labor ", CategoryLabor, true},
		{"category unknown", ParseCategory, "travel", "", false},
		{"type quant", ParseIndicatorType, "quant", IndicatorQuantitative, true},
		{"type qualitative", ParseIndicatorType, "Qualitative", IndicatorQualitative, true},
		{"type korean", ParseIndicatorType, "정성", IndicatorQualitative, true},
		{"role partner", ParseRole, "partner", RolePartner, true},
		{"role invalid", ParseRole, "observer", "", false},
		{"tree output", ParseTreeCategory, "output", TreeOutput, true},
		{"mode qual", ParseMode, "qual", ModeQual, true},
		{"mode invalid", ParseMode, "mixed", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKnownDepartments(t *testing.T) {
	assert.True(t, IsKnownDepartment("환경부"))
	assert.False(t, IsKnownDepartment("우주항공청"))
	assert.Len(t, KnownDepartments, 15)
}

func TestSummaryIsEmpty(t *testing.T) {
	assert.True(t, Summary{}.IsEmpty())
	assert.False(t, Summary{Strategy: "pilot first"}.IsEmpty())
}
