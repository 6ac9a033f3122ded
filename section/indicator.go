// ABOUTME: Composite indicator document: editor mode, quantitative list and qualitative text
// ABOUTME: Saved as one object and loaded whole-or-nothing

package section

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/validate"
)

type IndicatorStore struct {
	adapter *persist.Adapter
	// Quant is the quantitative list; its Save and Load go through the document.
	Quant *Store[models.QuantIndicator]

	mu   sync.Mutex
	mode string
	text string
}

func NewIndicatorStore(adapter *persist.Adapter) *IndicatorStore {
	d := &IndicatorStore{adapter: adapter, mode: models.ModeQuant}
	d.Quant = NewStore(QuantSchema(), adapter)
	d.Quant.save = d.saveWith
	d.Quant.load = d.loadQuant
	return d
}

func (d *IndicatorStore) Mode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SetMode switches the editor mode. Unknown modes are ignored.
func (d *IndicatorStore) SetMode(mode string) bool {
	m, ok := models.ParseMode(mode)
	if !ok {
		return false
	}
	d.mu.Lock()
	d.mode = m
	d.mu.Unlock()
	return true
}

func (d *IndicatorStore) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *IndicatorStore) SetText(text string) {
	d.mu.Lock()
	d.text = text
	d.mu.Unlock()
}

// Document returns the current state as it would be saved.
func (d *IndicatorStore) Document() models.IndicatorDocument {
	quant := d.Quant.Items()
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.IndicatorDocument{Mode: d.mode, QuantIndicators: quant, QualitativeText: d.text}
}

// Save writes the whole document.
func (d *IndicatorStore) Save() error {
	return d.Quant.Save()
}

func (d *IndicatorStore) saveWith(quant []models.QuantIndicator) error {
	d.mu.Lock()
	doc := models.IndicatorDocument{Mode: d.mode, QuantIndicators: quant, QualitativeText: d.text}
	d.mu.Unlock()
	return d.adapter.Save(models.KeyIndicator, doc)
}

// Load restores the whole document or nothing.
func (d *IndicatorStore) Load() (persist.LoadReport, error) {
	return d.Quant.Load()
}

func (d *IndicatorStore) Open() (persist.LoadReport, error) {
	return d.Quant.Open()
}

// loadQuant decodes the document and applies mode and text; the quantitative
// list is applied by the embedded store.
func (d *IndicatorStore) loadQuant() ([]models.QuantIndicator, persist.LoadReport, error) {
	report := persist.LoadReport{Key: models.KeyIndicator}

	raw, err := d.adapter.Read(models.KeyIndicator)
	if err != nil {
		return nil, report, err
	}
	doc, err := DecodeIndicatorDocument(raw)
	if err != nil {
		return nil, report, err
	}

	d.mu.Lock()
	if doc.Mode != "" {
		d.mode = doc.Mode
	}
	d.text = doc.QualitativeText
	d.mu.Unlock()

	report.Loaded = len(doc.QuantIndicators)
	return doc.QuantIndicators, report, nil
}

// DecodeIndicatorDocument decodes the object form of indicator-data. Any
// element of quantIndicators that fails to decode rejects the document.
func DecodeIndicatorDocument(raw interface{}) (models.IndicatorDocument, error) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return models.IndicatorDocument{}, fmt.Errorf("%w: indicator document is not an object", persist.ErrCorrupt)
	}

	var doc models.IndicatorDocument
	if m, ok := obj["mode"].(string); ok {
		doc.Mode, _ = models.ParseMode(m)
	}
	if t, ok := obj["qualitativeText"].(string); ok {
		doc.QualitativeText = t
	}

	doc.QuantIndicators = []models.QuantIndicator{}
	if list, present := obj["quantIndicators"]; present {
		elems, ok := list.([]interface{})
		if !ok {
			return models.IndicatorDocument{}, fmt.Errorf("%w: quantIndicators is not an array", persist.ErrCorrupt)
		}
		for i, elem := range elems {
			q, err := validate.QuantIndicator(elem)
			if err != nil {
				return models.IndicatorDocument{}, errors.Join(fmt.Errorf("%w: quantIndicators element %d", persist.ErrCorrupt, i), err)
			}
			doc.QuantIndicators = append(doc.QuantIndicators, q)
		}
	}
	return doc, nil
}
