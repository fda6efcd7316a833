package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CurbSoftwareInc/Chafftafarian-Chaff-Generator/internal/utils"
)

// Strength selects a password tier.
type Strength int

const (
	Weak Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	default:
		return fmt.Sprintf("Strength(%d)", int(s))
	}
}

const (
	strongLength   = 16
	strongAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	apiKeyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var weakPasswords = []string{
	"password123", "123456789", "qwerty123", "admin123", "letmein",
	"welcome123", "password1", "123456", "password", "admin",
}

var apiKeyPrefixes = []string{"sk_", "pk_", "api_", "key_", "token_"}

// localWords supplements gofakeit, which only ships English data.
var localWords = map[string][]string{
	"es": {"casa", "sol", "luna", "mar", "tierra", "fuego", "cielo", "rio", "campo", "puerta"},
	"fr": {"maison", "soleil", "lune", "mer", "terre", "feu", "ciel", "fleuve", "jardin", "porte"},
	"de": {"haus", "sonne", "mond", "meer", "erde", "feuer", "himmel", "fluss", "garten", "tuer"},
}

var localTags = map[string]language.Tag{
	"en": language.English,
	"es": language.Spanish,
	"fr": language.French,
	"de": language.German,
	"cn": language.Chinese,
	"jp": language.Japanese,
	"ru": language.Russian,
}

// PasswordGenerator produces passwords for protected chaff files. Weak and
// medium passwords draw from the generator's seeded source; strong ones
// always come from crypto/rand.
type PasswordGenerator struct {
	rng   *mrand.Rand
	faker *gofakeit.Faker
}

// NewPasswordGenerator returns a generator drawing from rng.
func NewPasswordGenerator(rng *mrand.Rand) *PasswordGenerator {
	return &PasswordGenerator{
		rng:   rng,
		faker: gofakeit.New(rng.Uint64()),
	}
}

// Generate returns a password of the requested strength.
func (g *PasswordGenerator) Generate(strength Strength, lang string) (string, error) {
	switch strength {
	case Weak:
		return g.Weak(), nil
	case Medium:
		return g.Medium(lang), nil
	case Strong:
		return StrongPassword()
	default:
		return "", fmt.Errorf("unknown password strength %d", int(strength))
	}
}

// Weak returns one of a small list of common real-world passwords.
func (g *PasswordGenerator) Weak() string {
	return utils.Choice(g.rng, weakPasswords)
}

// Medium returns a templated password built from locale-flavoured words.
func (g *PasswordGenerator) Medium(lang string) string {
	title := cases.Title(tagFor(lang))

	switch g.rng.IntN(4) {
	case 0:
		return fmt.Sprintf("%s%d!", utils.CompactWord(title.String(g.word(lang))), utils.IntBetween(g.rng, 10, 99))
	case 1:
		return fmt.Sprintf("%s%d", utils.CompactWord(g.faker.FirstName()), utils.IntBetween(g.rng, 1980, 2024))
	case 2:
		company := utils.Truncate(utils.CompactWord(g.faker.Company()), 8)
		return fmt.Sprintf("%s%d", company, utils.IntBetween(g.rng, 1, 99))
	default:
		city := utils.CompactWord(g.faker.City())
		return fmt.Sprintf("%s%d", city, utils.IntBetween(g.rng, 100, 999))
	}
}

// APIKey returns a prefixed 32 character key such as sk_... or token_...
func (g *PasswordGenerator) APIKey() (string, error) {
	body, err := randomString(apiKeyAlphabet, 32)
	if err != nil {
		return "", err
	}
	return utils.Choice(g.rng, apiKeyPrefixes) + body, nil
}

// Faker exposes the generator's seeded fake-data source.
func (g *PasswordGenerator) Faker() *gofakeit.Faker {
	return g.faker
}

func (g *PasswordGenerator) word(lang string) string {
	if words, ok := localWords[lang]; ok {
		return utils.Choice(g.rng, words)
	}
	return strings.ToLower(g.faker.Noun())
}

// StrongPassword returns 16 characters from letters, digits and !@#$%^&*.
func StrongPassword() (string, error) {
	return randomString(strongAlphabet, strongLength)
}

func randomString(alphabet string, n int) (string, error) {
	limit := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}

func tagFor(lang string) language.Tag {
	if tag, ok := localTags[lang]; ok {
		return tag
	}
	return language.Make(lang)
}
