package quantity

// Unit is implemented by zero-sized marker types that tag a Quantity.
// Quantities with different units are different Go types and cannot be
// combined.
type Unit interface {
	// Suffix is appended to the quantity's display text.
	Suffix() string
}

// Emission is CO2-equivalent mass in grams.
type Emission struct{}

func (Emission) Suffix() string { return "g" }

// Flyer counts printed flyers.
type Flyer struct{}

func (Flyer) Suffix() string { return "" }

// Person counts people.
type Person struct{}

func (Person) Suffix() string { return "" }

// ResearchPoint measures research progress.
type ResearchPoint struct{}

func (ResearchPoint) Suffix() string { return "" }
