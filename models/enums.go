// ABOUTME: Enumerations, storage keys and reference lists for proposal sections
// ABOUTME: Wire values are the persisted strings; English aliases are accepted on input
package models

import "strings"

// Storage keys. These names are shared with documents written by earlier
// versions and must not change.
const (
	KeyTree             = "tree-data"
	KeyBudget           = "budget-data"
	KeyIndicator        = "indicator-data"
	KeyDepartment       = "department-data"
	KeyDepartmentLegacy = "departments"
	KeyRisks            = "risks"
	KeyEffects          = "effects"
	KeySummary          = "summary"
)

// Budget categories.
const (
	CategoryLabor      = "인건비"
	CategoryOperations = "운영비"
	CategoryOther      = "기타"
)

// Indicator types.
const (
	IndicatorQuantitative = "정량"
	IndicatorQualitative  = "정성"
)

// Indicator editor modes.
const (
	ModeQuant = "quant"
	ModeQual  = "qual"
)

// Department roles.
const (
	RoleLead    = "주관"
	RolePartner = "협력"
)

// Tree node categories.
const (
	TreeEffect  = "효과"
	TreeOutcome = "결과"
	TreeOutput  = "산출물"
)

// Risk score bounds.
const (
	ScoreMin = 1
	ScoreMax = 5
)

// KnownDepartments is the reference list offered when adding a department.
var KnownDepartments = []string{
	"기획재정부", "외교부", "산업통상자원부", "보건복지부", "환경부",
	"고용노동부", "농림축산식품부", "교육부", "과학기술정보통신부", "국토교통부",
	"해양수산부", "문화체육관광부", "여성가족부", "중소벤처기업부", "행정안전부",
}

// IsKnownDepartment reports whether name is on the reference list.
func IsKnownDepartment(name string) bool {
	for _, d := range KnownDepartments {
		if d == name {
			return true
		}
	}
	return false
}

var (
	categoryAliases = map[string]string{
		CategoryLabor:      CategoryLabor,
		CategoryOperations: CategoryOperations,
		CategoryOther:      CategoryOther,
		"labor":            CategoryLabor,
		"operations":       CategoryOperations,
		"other":            CategoryOther,
	}
	indicatorTypeAliases = map[string]string{
		IndicatorQuantitative: IndicatorQuantitative,
		IndicatorQualitative:  IndicatorQualitative,
		"quant":               IndicatorQuantitative,
		"quantitative":        IndicatorQuantitative,
		"qual":                IndicatorQualitative,
		"qualitative":         IndicatorQualitative,
	}
	roleAliases = map[string]string{
		RoleLead:    RoleLead,
		RolePartner: RolePartner,
		"lead":      RoleLead,
		"partner":   RolePartner,
	}
	treeCategoryAliases = map[string]string{
		TreeEffect:  TreeEffect,
		TreeOutcome: TreeOutcome,
		TreeOutput:  TreeOutput,
		"effect":    TreeEffect,
		"outcome":   TreeOutcome,
		"output":    TreeOutput,
	}
)

func lookup(aliases map[string]string, value string) (string, bool) {
	v, ok := aliases[strings.ToLower(strings.TrimSpace(value))]
	return v, ok
}

// ParseCategory normalizes a budget category.
func ParseCategory(value string) (string, bool) { return lookup(categoryAliases, value) }

// ParseIndicatorType normalizes an indicator type.
func ParseIndicatorType(value string) (string, bool) { return lookup(indicatorTypeAliases, value) }

// ParseRole normalizes a department role.
func ParseRole(value string) (string, bool) { return lookup(roleAliases, value) }

// ParseTreeCategory normalizes a tree node category.
func ParseTreeCategory(value string) (string, bool) { return lookup(treeCategoryAliases, value) }

// ParseMode normalizes an indicator editor mode.
func ParseMode(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case ModeQuant, "quantitative":
		return ModeQuant, true
	case ModeQual, "qualitative":
		return ModeQual, true
	}
	return "", false
}

// SectionLabel returns the display name of the section stored under key.
func SectionLabel(key string) string {
	switch key {
	case KeyTree:
		return "문제해결 트리"
	case KeyBudget:
		return "예산"
	case KeyIndicator:
		return "성과지표"
	case KeyDepartment, KeyDepartmentLegacy:
		return "주관·협력부처"
	case KeyRisks:
		return "리스크 분석"
	case KeyEffects:
		return "기대효과"
	case KeySummary:
		return "요약"
	}
	return key
}
