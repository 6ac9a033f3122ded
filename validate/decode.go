// ABOUTME: Decoders turning raw JSON values from storage into typed records
// ABOUTME: Each function implements the single-record load policy of one schema
package validate

import (
	"github.com/harperreed/propkit/models"
)

type fields map[string]interface{}

func asFields(schema string, raw interface{}) (fields, error) {
	m, ok := raw.(map[string]interface{})
	if !ok || m == nil {
		return nil, reject(schema, "expected an object, got %T", raw)
	}
	return fields(m), nil
}

func (f fields) requireID(schema string) (string, error) {
	id, ok := f["id"].(string)
	if !ok || id == "" {
		return "", reject(schema, "missing id")
	}
	return id, nil
}

// idOrNew tolerates records written without an id by older editors.
func (f fields) idOrNew() string {
	if id, ok := f["id"].(string); ok && id != "" {
		return id
	}
	return models.NewID()
}

func (f fields) requireText(schema, name string) (string, error) {
	v, present := f[name]
	if !present {
		return "", reject(schema, "missing %s", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", reject(schema, "%s must be text", name)
	}
	return s, nil
}

func (f fields) optionalText(name string) string {
	s, _ := f[name].(string)
	return s
}

func (f fields) requireNumber(schema, name string) (float64, error) {
	v, present := f[name]
	if !present {
		return 0, reject(schema, "missing %s", name)
	}
	return CoerceNumber(v), nil
}

func Budget(raw interface{}) (models.BudgetItem, error) {
	const schema = "budget"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.BudgetItem{}, err
	}
	id, err := f.requireID(schema)
	if err != nil {
		return models.BudgetItem{}, err
	}
	category, err := f.requireText(schema, "category")
	if err != nil {
		return models.BudgetItem{}, err
	}
	name, err := f.requireText(schema, "name")
	if err != nil {
		return models.BudgetItem{}, err
	}
	unit, err := f.requireText(schema, "unit")
	if err != nil {
		return models.BudgetItem{}, err
	}
	amount, err := f.requireNumber(schema, "amount")
	if err != nil {
		return models.BudgetItem{}, err
	}

	item := models.BudgetItem{
		ID:       id,
		Category: BudgetCategory(category),
		Name:     name,
		Unit:     unit,
		Amount:   amount,
	}
	return item, check(schema, item)
}

func QuantIndicator(raw interface{}) (models.QuantIndicator, error) {
	const schema = "indicator"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.QuantIndicator{}, err
	}
	id, err := f.requireID(schema)
	if err != nil {
		return models.QuantIndicator{}, err
	}
	name, err := f.requireText(schema, "name")
	if err != nil {
		return models.QuantIndicator{}, err
	}
	unit, err := f.requireText(schema, "unit")
	if err != nil {
		return models.QuantIndicator{}, err
	}
	baseline, err := f.requireNumber(schema, "baseline")
	if err != nil {
		return models.QuantIndicator{}, err
	}
	target, err := f.requireNumber(schema, "target")
	if err != nil {
		return models.QuantIndicator{}, err
	}

	q := models.QuantIndicator{ID: id, Name: name, Unit: unit, Baseline: baseline, Target: target}
	return q, check(schema, q)
}

func IndicatorItem(raw interface{}) (models.IndicatorItem, error) {
	const schema = "indicator"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.IndicatorItem{}, err
	}
	id, err := f.requireID(schema)
	if err != nil {
		return models.IndicatorItem{}, err
	}
	description, err := f.requireText(schema, "description")
	if err != nil {
		return models.IndicatorItem{}, err
	}
	amount, err := f.requireNumber(schema, "amount")
	if err != nil {
		return models.IndicatorItem{}, err
	}

	item := models.IndicatorItem{
		ID:          id,
		Description: description,
		Amount:      amount,
		Type:        IndicatorType(f.optionalText("type")),
	}
	return item, check(schema, item)
}

func Department(raw interface{}) (models.Department, error) {
	const schema = "department"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.Department{}, err
	}
	name, err := f.requireText(schema, "name")
	if err != nil {
		return models.Department{}, err
	}
	role, ok := models.ParseRole(f.optionalText("role"))
	if !ok {
		return models.Department{}, reject(schema, "role must be %s or %s", models.RoleLead, models.RolePartner)
	}

	// The legacy departments key stored name/role pairs without ids.
	d := models.Department{ID: f.idOrNew(), Name: name, Role: role}
	return d, check(schema, d)
}

func Risk(raw interface{}) (models.Risk, error) {
	const schema = "risk"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.Risk{}, err
	}
	factor, err := f.requireText(schema, "factor")
	if err != nil {
		return models.Risk{}, err
	}
	impact, present := f["impact"]
	if !present {
		return models.Risk{}, reject(schema, "missing impact")
	}
	likelihood, present := f["likelihood"]
	if !present {
		return models.Risk{}, reject(schema, "missing likelihood")
	}

	r := models.Risk{
		ID:         f.idOrNew(),
		Factor:     factor,
		Impact:     Score(impact),
		Likelihood: Score(likelihood),
	}
	return r, check(schema, r)
}

func Effect(raw interface{}) (models.Effect, error) {
	const schema = "effect"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.Effect{}, err
	}
	text, err := f.requireText(schema, "text")
	if err != nil {
		return models.Effect{}, err
	}
	e := models.Effect{ID: f.idOrNew(), Text: text}
	return e, check(schema, e)
}

// EffectText accepts both persisted effect shapes: a bare string or a record
// with a text field.
func EffectText(raw interface{}) (string, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	e, err := Effect(raw)
	if err != nil {
		return "", err
	}
	return e.Text, nil
}

func TreeNode(raw interface{}) (models.TreeNode, error) {
	const schema = "tree"
	f, err := asFields(schema, raw)
	if err != nil {
		return models.TreeNode{}, err
	}
	title, err := f.requireText(schema, "title")
	if err != nil {
		return models.TreeNode{}, err
	}
	level, present := f["level"]
	if !present {
		return models.TreeNode{}, reject(schema, "missing level")
	}

	n := models.TreeNode{
		ID:       f.idOrNew(),
		Title:    title,
		Level:    Level(level),
		Category: TreeCategory(f.optionalText("category")),
		Comment:  f.optionalText("comment"),
	}
	return n, check(schema, n)
}

// Summary decodes the singleton summary. Missing or non-text fields are empty.
func Summary(raw interface{}) (models.Summary, error) {
	f, err := asFields("summary", raw)
	if err != nil {
		return models.Summary{}, err
	}
	return models.Summary{
		Background:     f.optionalText("background"),
		Objective:      f.optionalText("objective"),
		Strategy:       f.optionalText("strategy"),
		ExpectedEffect: f.optionalText("expectedEffect"),
	}, nil
}

// BudgetCategory normalizes a category, falling back to the "other" bucket.
func BudgetCategory(value string) string {
	if c, ok := models.ParseCategory(value); ok {
		return c
	}
	return models.CategoryOther
}

// IndicatorType normalizes a type, falling back to quantitative.
func IndicatorType(value string) string {
	if t, ok := models.ParseIndicatorType(value); ok {
		return t
	}
	return models.IndicatorQuantitative
}

// TreeCategory normalizes an optional category; unknown values clear it.
func TreeCategory(value string) string {
	c, _ := models.ParseTreeCategory(value)
	return c
}
