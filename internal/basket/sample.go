package basket

// SampleItems is the vocabulary of the built-in demo corpus.
var SampleItems = []Item{
	"Car", "Tennis Ball", "Tennis Racket", "Laundry Detergent", "Softener",
	"Flour", "Milk", "Screwdriver", "Toothpaste",
}

// Sample returns the built-in demo corpus. It mixes very common items
// (toothpaste, milk) with tightly associated ones (detergent/softener,
// tennis ball/racket, car/screwdriver) so that the metrics have something
// to find. The first basket contains every item, so each item co-occurs
// with every other at least once.
func Sample() Corpus {
	return Corpus{
		New(SampleItems...),
		New("Car", "Toothpaste"),
		New("Tennis Ball", "Tennis Racket", "Toothpaste"),
		New("Laundry Detergent", "Softener"),
		New("Laundry Detergent", "Softener"),
		New("Laundry Detergent", "Softener", "Milk"),
		New("Flour", "Milk"),
		New("Flour", "Milk"),
		New("Toothpaste", "Flour", "Laundry Detergent"),
		New("Screwdriver", "Car", "Milk"),
		New("Toothpaste", "Milk"),
		New("Toothpaste", "Milk"),
		New("Milk", "Flour"),
		New("Car", "Screwdriver"),
		New("Car", "Toothpaste"),
		New("Tennis Ball", "Tennis Racket", "Toothpaste"),
		New("Laundry Detergent", "Softener"),
		New("Laundry Detergent", "Softener"),
		New("Laundry Detergent", "Softener", "Milk"),
		New("Flour", "Milk"),
		New("Flour", "Milk"),
		New("Toothpaste", "Flour", "Laundry Detergent"),
		New("Screwdriver", "Car", "Milk"),
		New("Toothpaste", "Milk"),
		New("Toothpaste", "Milk"),
		New("Milk", "Flour"),
		New("Car", "Screwdriver"),
		New("Toothpaste", "Milk"),
		New("Toothpaste", "Milk"),
		New("Toothpaste", "Milk"),
	}
}
