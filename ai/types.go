package ai

// SentimentLabels defines the label set classifiers must score against.
// The order here is the canonical presentation order; classifiers may return
// scores in any order.
var SentimentLabels = []string{
	"negative",
	"neutral",
	"positive",
}

// IsKnownLabel reports whether the label belongs to the sentiment label set.
func IsKnownLabel(label string) bool {
	for _, known := range SentimentLabels {
		if label == known {
			return true
		}
	}
	return false
}
