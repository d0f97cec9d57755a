package emotion

import "encoding/json"

// Label identifies one emotion bucket recognized by the classifier.
type Label string

const (
	Joy        Label = "joy"
	Sadness    Label = "sadness"
	Anger      Label = "anger"
	Anxiety    Label = "anxiety"
	Confusion  Label = "confusion"
	Fatigue    Label = "fatigue"
	Calmness   Label = "calmness"
	Gratitude  Label = "gratitude"
	Loneliness Label = "loneliness"
	Neutral    Label = "neutral"
	Engaged    Label = "engaged"
)

// Distribution maps emotion labels to confidence values in [0,1].
// Insertion order is preserved so that argmax ties resolve to the
// first label added.
type Distribution struct {
	labels []Label
	values map[Label]float64
}

// NewDistribution returns an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{values: make(map[Label]float64)}
}

// Set records confidence for a label, clamping the value to [0,1].
func (d *Distribution) Set(label Label, confidence float64) {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	if _, ok := d.values[label]; !ok {
		d.labels = append(d.labels, label)
	}
	d.values[label] = confidence
}

// Get returns the stored confidence for a label, zero when absent.
func (d *Distribution) Get(label Label) float64 {
	return d.values[label]
}

// Len reports how many labels carry a confidence value.
func (d *Distribution) Len() int {
	return len(d.labels)
}

// Labels returns the labels in insertion order.
func (d *Distribution) Labels() []Label {
	return append([]Label(nil), d.labels...)
}

// Dominant returns the highest-confidence label. Ties resolve to the
// label inserted first. An empty distribution reports neutral.
func (d *Distribution) Dominant() (Label, float64) {
	if len(d.labels) == 0 {
		return Neutral, 0
	}
	best := d.labels[0]
	for _, label := range d.labels[1:] {
		if d.values[label] > d.values[best] {
			best = label
		}
	}
	return best, d.values[best]
}

// Secondary returns every label except the dominant one, in insertion order.
func (d *Distribution) Secondary() []Label {
	dominant, _ := d.Dominant()
	secondary := make([]Label, 0, len(d.labels))
	for _, label := range d.labels {
		if label != dominant {
			secondary = append(secondary, label)
		}
	}
	return secondary
}

// ToMap exposes the distribution as a plain map for JSON responses.
func (d *Distribution) ToMap() map[string]float64 {
	out := make(map[string]float64, len(d.labels))
	for _, label := range d.labels {
		out[string(label)] = d.values[label]
	}
	return out
}

// MarshalJSON renders the distribution as a label→confidence object.
func (d *Distribution) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}
