// ABOUTME: Data models for proposal document sections
// ABOUTME: Defines budget, indicator, department, risk, effect, tree and summary records
package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Record is implemented by every collection element. The id is assigned once
// at creation and never recomputed.
type Record interface {
	RecordID() string
}

// NewID returns a fresh opaque record identifier.
func NewID() string {
	return uuid.New().String()
}

type BudgetItem struct {
	ID       string  `json:"id" validate:"required"`
	Category string  `json:"category" validate:"oneof=인건비 운영비 기타"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Amount   float64 `json:"amount"`
}

func (b BudgetItem) RecordID() string { return b.ID }

// QuantIndicator is a row of the quantitative indicator editor.
type QuantIndicator struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Baseline float64 `json:"baseline"`
	Target   float64 `json:"target"`
}

func (q QuantIndicator) RecordID() string { return q.ID }

// IndicatorItem is a row of the simple indicator page.
type IndicatorItem struct {
	ID          string  `json:"id" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type" validate:"oneof=정량 정성"`
}

func (i IndicatorItem) RecordID() string { return i.ID }

// IndicatorDocument is the composite document written by the indicator editor.
type IndicatorDocument struct {
	Mode            string           `json:"mode"`
	QuantIndicators []QuantIndicator `json:"quantIndicators"`
	QualitativeText string           `json:"qualitativeText"`
}

type Department struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"oneof=주관 협력"`
}

func (d Department) RecordID() string { return d.ID }

// Risk severity is derived and deliberately has no JSON field.
type Risk struct {
	ID         string `json:"id" validate:"required"`
	Factor     string `json:"factor"`
	Impact     int    `json:"impact" validate:"min=1,max=5"`
	Likelihood int    `json:"likelihood" validate:"min=1,max=5"`
}

func (r Risk) RecordID() string { return r.ID }

// Severity is impact times likelihood, recomputed on every call.
func (r Risk) Severity() int {
	return r.Impact * r.Likelihood
}

type Effect struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text"`
}

func (e Effect) RecordID() string { return e.ID }

// TreeNode is one line of the problem-solving tree outline.
type TreeNode struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title"`
	Level    int    `json:"level" validate:"min=0,max=100"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=효과 결과 산출물"`
	Comment  string `json:"comment,omitempty"`
}

func (n TreeNode) RecordID() string { return n.ID }

// Summary is the singleton project summary record.
type Summary struct {
	Background     string `json:"background"`
	Objective      string `json:"objective"`
	Strategy       string `json:"strategy"`
	ExpectedEffect string `json:"expectedEffect"`
}

// IsEmpty reports whether every summary field is blank.
func (s Summary) IsEmpty() bool {
	return s.Background == "" && s.Objective == "" && s.Strategy == "" && s.ExpectedEffect == ""
}

// NodeNumber returns the outline label shown next to a tree node.
func NodeNumber(index, level int) string {
	if level == 0 {
		return fmt.Sprintf("%d", index+1)
	}
	return fmt.Sprintf("%d.%d", index+1, level)
}
