package credentials

import (
	"crypto/rand"
	"math/big"
)

// Kid-friendly word lists for suggested player names. Accents are left out
// so the names stay safe in URLs and filenames.
var adjectivesByLanguage = map[string][]string{
	"en": {
		"happy", "sunny", "brave", "bright", "swift", "clever", "jolly",
		"mighty", "super", "wild", "lucky", "magic", "bouncy", "cosmic",
		"daring", "eager", "gentle", "lively", "merry", "noble", "quick",
	},
	"es": {
		"veloz", "feliz", "valiente", "listo", "alegre", "fuerte", "magico",
		"rapido", "genial", "brillante", "intrepido", "curioso", "astuto",
		"gran", "noble", "agil", "sabio", "audaz", "tranquilo", "vivaz",
	},
}

var nounsByLanguage = map[string][]string{
	"en": {
		"dragon", "tiger", "eagle", "dolphin", "panda", "lion", "wolf",
		"fox", "hawk", "phoenix", "unicorn", "rocket", "wizard", "knight",
		"explorer", "ranger", "comet", "thunder", "reader", "racer",
	},
	"es": {
		"dragon", "tigre", "aguila", "delfin", "lobo", "zorro", "halcon",
		"fenix", "unicornio", "cohete", "mago", "caballero", "explorador",
		"cometa", "trueno", "lector", "campeon", "heroe", "gato", "leon",
	},
}

// GeneratePlayerName suggests a random "adjective-noun" profile name in
// the given language. Unknown languages fall back to English.
func GeneratePlayerName(language string) (string, error) {
	adjectives, ok := adjectivesByLanguage[language]
	if !ok {
		adjectives = adjectivesByLanguage["en"]
	}
	nouns, ok := nounsByLanguage[language]
	if !ok {
		nouns = nounsByLanguage["en"]
	}

	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}
	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	if language == "es" {
		// Spanish puts the adjective after the noun.
		return noun + "-" + adjective, nil
	}
	return adjective + "-" + noun, nil
}

// randomElement picks a cryptographically random element from a slice
func randomElement(slice []string) (string, error) {
	if len(slice) == 0 {
		return "", nil
	}
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
