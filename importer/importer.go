// ABOUTME: Bulk import of delimited text into proposal sections
// ABOUTME: Row validation, all-or-nothing or per-row batches, replace or append

package importer

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/validate"
)

var (
	ErrNoRows      = errors.New("no data rows")
	ErrUnsupported = errors.New("section does not support import")
)

// Columns each section's header must provide.
var (
	BudgetColumns    = []string{"category", "name", "unit", "amount"}
	IndicatorColumns = []string{"description", "amount", "type"}
	QuantColumns     = []string{"name", "unit", "baseline", "target"}
	RiskColumns      = []string{"factor", "impact", "likelihood"}
)

// ImportError rejects a whole batch. State is unchanged when it is returned.
type ImportError struct {
	Section string
	Columns []string
	Line    int
	Reason  string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("invalid CSV for %s: expected columns %s (line %d: %s)",
		e.Section, strings.Join(e.Columns, ", "), e.Line, e.Reason)
}

// Message is the user-facing explanation.
func (e *ImportError) Message() string {
	switch e.Section {
	case section.NameBudget:
		return "CSV 파일 형식이 올바르지 않습니다. 헤더 누락 또는 금액 오류 가능성 있음."
	case section.NameIndicators:
		return "CSV 형식 오류: 필수 항목 누락 또는 타입 불일치"
	case section.NameQuant:
		return "CSV 형식이 잘못되었습니다. 모든 열을 채워주세요."
	case section.NameRisks:
		return "CSV 형식이 올바르지 않습니다. factor, impact, likelihood 세 항목이 필요합니다."
	}
	return e.Error()
}

// Result describes an applied import.
type Result struct {
	Section  string
	BatchID  ulid.ULID
	Accepted int
	Dropped  int
}

// Importer applies parsed files to a workspace's stores.
type Importer struct {
	ws     *section.Workspace
	notify prompt.Notifier
	logger *log.Logger

	mu      sync.Mutex
	entropy io.Reader
}

type Option func(*Importer)

func WithNotifier(n prompt.Notifier) Option {
	return func(im *Importer) { im.notify = n }
}

func WithLogger(l *log.Logger) Option {
	return func(im *Importer) { im.logger = l }
}

func New(ws *section.Workspace, opts ...Option) *Importer {
	im := &Importer{
		ws:      ws,
		notify:  ws.Adapter.Notifier(),
		logger:  ws.Adapter.Logger(),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Sections lists the section names that accept imports.
func Sections() []string {
	return []string{section.NameBudget, section.NameIndicators, section.NameQuant, section.NameRisks, section.NameEffects}
}

// Import parses r and applies it to the named section.
func (im *Importer) Import(name string, r io.Reader) (Result, error) {
	var (
		res Result
		err error
	)
	switch name {
	case section.NameBudget:
		res, err = im.Budget(r)
	case section.NameIndicators:
		res, err = im.Indicators(r)
	case section.NameQuant:
		res, err = im.Quant(r)
	case section.NameRisks:
		res, err = im.Risks(r)
	case section.NameEffects:
		res, err = im.Effects(r)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}

	var ie *ImportError
	switch {
	case err == nil:
		im.logger.Info("import applied", "section", name, "batch", res.BatchID, "accepted", res.Accepted, "dropped", res.Dropped)
		im.notify.Info("CSV 업로드 완료")
	case errors.As(err, &ie):
		im.logger.Warn("import rejected", "section", name, "line", ie.Line, "reason", ie.Reason)
		im.notify.Warn(ie.Message())
	case errors.Is(err, ErrNoRows):
		im.notify.Warn("CSV 파일에 데이터가 없습니다.")
	default:
		im.notify.Warn("CSV 파일 읽기 중 오류가 발생했습니다.")
	}
	return res, err
}

func (im *Importer) result(name string, accepted, dropped int) Result {
	im.mu.Lock()
	defer im.mu.Unlock()
	return Result{
		Section:  name,
		BatchID:  ulid.MustNew(ulid.Timestamp(time.Now()), im.entropy),
		Accepted: accepted,
		Dropped:  dropped,
	}
}

func rows(r io.Reader) ([]Row, error) {
	parsed, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	if len(parsed) == 0 {
		return nil, ErrNoRows
	}
	return parsed, nil
}

func (im *Importer) Budget(r io.Reader) (Result, error) {
	parsed, err := rows(r)
	if err != nil {
		return Result{}, err
	}
	items, err := BudgetRows(parsed)
	if err != nil {
		return Result{}, err
	}
	if err := im.ws.Budget.Replace(items); err != nil {
		return Result{}, err
	}
	return im.result(section.NameBudget, len(items), 0), nil
}

func (im *Importer) Indicators(r io.Reader) (Result, error) {
	parsed, err := rows(r)
	if err != nil {
		return Result{}, err
	}
	items, err := IndicatorRows(parsed)
	if err != nil {
		return Result{}, err
	}
	if err := im.ws.Indicators.Replace(items); err != nil {
		return Result{}, err
	}
	return im.result(section.NameIndicators, len(items), 0), nil
}

func (im *Importer) Quant(r io.Reader) (Result, error) {
	parsed, err := rows(r)
	if err != nil {
		return Result{}, err
	}
	items, err := QuantRows(parsed)
	if err != nil {
		return Result{}, err
	}
	if err := im.ws.Indicator.Quant.Replace(items); err != nil {
		return Result{}, err
	}
	return im.result(section.NameQuant, len(items), 0), nil
}

// Risks appends to the existing risks; the store persists the combination.
func (im *Importer) Risks(r io.Reader) (Result, error) {
	parsed, err := rows(r)
	if err != nil {
		return Result{}, err
	}
	items, err := RiskRows(parsed)
	if err != nil {
		return Result{}, err
	}
	if err := im.ws.Risks.Append(items); err != nil {
		return Result{}, err
	}
	return im.result(section.NameRisks, len(items), 0), nil
}

// Effects replaces the effects with every line whose first cell has text.
func (im *Importer) Effects(r io.Reader) (Result, error) {
	records, err := ParseLines(r)
	if err != nil {
		return Result{}, err
	}
	items, dropped := EffectLines(records)
	if len(items) == 0 && dropped == 0 {
		return Result{}, ErrNoRows
	}
	if err := im.ws.Effects.Replace(items); err != nil {
		return Result{}, err
	}
	return im.result(section.NameEffects, len(items), dropped), nil
}

func reject(name string, columns []string, row Row, format string, args ...interface{}) error {
	return &ImportError{Section: name, Columns: columns, Line: row.Line, Reason: fmt.Sprintf(format, args...)}
}

func requireColumns(name string, columns []string, row Row) error {
	for _, c := range columns {
		if _, ok := row.Get(c); !ok {
			return reject(name, columns, row, "missing %s", c)
		}
	}
	return nil
}

func number(name string, columns []string, row Row, column string) (float64, error) {
	v, _ := row.Get(column)
	f, ok := validate.ParseNumber(v)
	if !ok {
		return 0, reject(name, columns, row, "%s %q is not a number", column, v)
	}
	return f, nil
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// BudgetRows converts every row or none. Blank text cells take the add defaults.
func BudgetRows(parsed []Row) ([]models.BudgetItem, error) {
	const name = section.NameBudget
	items := make([]models.BudgetItem, 0, len(parsed))
	for _, row := range parsed {
		if err := requireColumns(name, BudgetColumns, row); err != nil {
			return nil, err
		}
		amount, err := number(name, BudgetColumns, row, "amount")
		if err != nil {
			return nil, err
		}
		category, _ := row.Get("category")
		item, _ := row.Get("name")
		unit, _ := row.Get("unit")
		items = append(items, models.BudgetItem{
			ID:       models.NewID(),
			Category: validate.BudgetCategory(category),
			Name:     or(item, "항목명"),
			Unit:     or(unit, "원"),
			Amount:   amount,
		})
	}
	return items, nil
}

func IndicatorRows(parsed []Row) ([]models.IndicatorItem, error) {
	const name = section.NameIndicators
	items := make([]models.IndicatorItem, 0, len(parsed))
	for _, row := range parsed {
		if err := requireColumns(name, IndicatorColumns, row); err != nil {
			return nil, err
		}
		amount, err := number(name, IndicatorColumns, row, "amount")
		if err != nil {
			return nil, err
		}
		raw, _ := row.Get("type")
		kind, ok := models.ParseIndicatorType(raw)
		if !ok {
			return nil, reject(name, IndicatorColumns, row, "type %q is neither %s nor %s", raw, models.IndicatorQuantitative, models.IndicatorQualitative)
		}
		description, _ := row.Get("description")
		if description == "" {
			return nil, reject(name, IndicatorColumns, row, "description is required")
		}
		items = append(items, models.IndicatorItem{
			ID:          models.NewID(),
			Description: description,
			Amount:      amount,
			Type:        kind,
		})
	}
	return items, nil
}

func QuantRows(parsed []Row) ([]models.QuantIndicator, error) {
	const name = section.NameQuant
	items := make([]models.QuantIndicator, 0, len(parsed))
	for _, row := range parsed {
		item, _ := row.Get("name")
		unit, _ := row.Get("unit")
		if item == "" || unit == "" {
			return nil, reject(name, QuantColumns, row, "name and unit are required")
		}
		baseline, err := number(name, QuantColumns, row, "baseline")
		if err != nil {
			return nil, err
		}
		target, err := number(name, QuantColumns, row, "target")
		if err != nil {
			return nil, err
		}
		items = append(items, models.QuantIndicator{
			ID:       models.NewID(),
			Name:     item,
			Unit:     unit,
			Baseline: baseline,
			Target:   target,
		})
	}
	return items, nil
}

// RiskRows rounds and clamps scores into range.
func RiskRows(parsed []Row) ([]models.Risk, error) {
	const name = section.NameRisks
	items := make([]models.Risk, 0, len(parsed))
	for _, row := range parsed {
		factor, _ := row.Get("factor")
		if factor == "" {
			return nil, reject(name, RiskColumns, row, "factor is required")
		}
		impact, err := number(name, RiskColumns, row, "impact")
		if err != nil {
			return nil, err
		}
		likelihood, err := number(name, RiskColumns, row, "likelihood")
		if err != nil {
			return nil, err
		}
		items = append(items, models.Risk{
			ID:         models.NewID(),
			Factor:     factor,
			Impact:     validate.Score(impact),
			Likelihood: validate.Score(likelihood),
		})
	}
	return items, nil
}

// EffectLines keeps lines whose first cell has text. A leading "text"
// header line is skipped and not counted.
func EffectLines(records [][]string) ([]models.Effect, int) {
	if len(records) > 0 && len(records[0]) > 0 && strings.EqualFold(records[0][0], "text") {
		records = records[1:]
	}
	items := make([]models.Effect, 0, len(records))
	dropped := 0
	for _, record := range records {
		if len(record) == 0 || record[0] == "" {
			dropped++
			continue
		}
		items = append(items, models.Effect{ID: models.NewID(), Text: record[0]})
	}
	return items, dropped
}
