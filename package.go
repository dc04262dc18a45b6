package tripsearch

// Field names exposed by Package through the Fielder interface.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldCity     = "city"
	FieldPrice    = "price"
	FieldDuration = "duration"
)

// Fielder exposes named attributes to filter expressions. A missing
// attribute reports ok == false.
type Fielder interface {
	Field(name string) (value any, ok bool)
}

// Package is a bookable tour package or destination.
type Package struct {
	ID   string `json:"id" yaml:"id" dynamodbav:"id"`
	Name string `json:"name" yaml:"name" dynamodbav:"name"`
	City string `json:"city" yaml:"city" dynamodbav:"city"`

	// Price is the package price. Nil means the package has no listed price.
	Price *float64 `json:"price,omitempty" yaml:"price,omitempty" dynamodbav:"price,omitempty"`

	// Duration is the package length in days. Nil means not specified.
	Duration *int `json:"duration,omitempty" yaml:"duration,omitempty" dynamodbav:"duration,omitempty"`
}

var _ Fielder = Package{}

// Field implements Fielder.
func (p Package) Field(name string) (any, bool) {
	switch name {
	case FieldID:
		return p.ID, true
	case FieldName:
		return p.Name, true
	case FieldCity:
		return p.City, true
	case FieldPrice:
		if p.Price == nil {
			return nil, false
		}
		return *p.Price, true
	case FieldDuration:
		if p.Duration == nil {
			return nil, false
		}
		return *p.Duration, true
	default:
		return nil, false
	}
}

// Price returns a pointer to v, for building Package literals.
func Price(v float64) *float64 { return &v }

// Days returns a pointer to v, for building Package literals.
func Days(v int) *int { return &v }
