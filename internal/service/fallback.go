package service

import "schenkly.app/concierge/internal/model"

// FallbackSuggestions returns the canned gift ideas served whenever generated
// suggestions are unavailable. Each call returns a fresh slice.
func FallbackSuggestions() []model.Suggestion {
	return []model.Suggestion{
		{
			Name:        "Aromatherapie-Duftkerzen-Set",
			Description: "Ein Set beruhigender Duftkerzen, ideal zur Entspannung.",
			SearchTerm:  "Aromatherapie Duftkerzen Set",
		},
		{
			Name:        "Kabellose Bluetooth-Kopfhörer",
			Description: "Komfortable Kopfhörer mit langer Akkulaufzeit und sattem Sound.",
			SearchTerm:  "Kabellose Bluetooth Kopfhörer",
		},
		{
			Name:        "Personalisierte Fototasse",
			Description: "Eine Tasse mit individuellem Foto – perfektes Geschenk für jeden Anlass.",
			SearchTerm:  "Personalisierte Fototasse",
		},
	}
}
