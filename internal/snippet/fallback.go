package snippet

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

const (
	// Shown when an article has no usable body text at all.
	emptyContentPlaceholder = "Esta noticia no tiene detalles disponibles por el momento. " +
		"Los hechos principales aún se están confirmando. ¡Mantente atento para más actualizaciones!"

	// Shown when the body text is nothing but lead-ins and whitespace.
	emptyCleanedPlaceholder = "Los detalles de esta noticia aún se están confirmando. " +
		"Se esperan más actualizaciones en las próximas horas."

	contextSentence = " Esta situación se desarrolla en un contexto de cambios importantes en el sector."

	targetLengthMin  = 400
	targetLengthSpan = 200
)

var (
	leadInPattern     = regexp.MustCompile(`(?i)¿Qué pasó\?|¿Que paso\?`)
	leadingBullet     = regexp.MustCompile(`^\s*[-•]\s*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// informalSubstitutions rewrites stiff newsroom phrasing into the
// shorter informal register the feed uses. Applied in order.
var informalSubstitutions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)se ha anunciado`), "se anunció"},
	{regexp.MustCompile(`(?i)ha sido`), "fue"},
	{regexp.MustCompile(`(?i)se encuentra`), "está"},
	{regexp.MustCompile(`(?i)por consiguiente`), "como resultado"},
	{regexp.MustCompile(`(?i)no obstante`), "sin embargo"},
	{regexp.MustCompile(`(?i)de acuerdo con`), "según"},
	{regexp.MustCompile(`(?i)aproximadamente`), "cerca de"},
	{regexp.MustCompile(`(?i)posteriormente`), "después"},
	{regexp.MustCompile(`(?i)anteriormente`), "antes"},
	{regexp.MustCompile(`(?i)actualmente`), "ahora"},
	{regexp.MustCompile(`(?i)recientemente`), "hace poco"},
}

var causalConnectors = []string{"porque", "debido a", "como resultado"}

// Generator produces display snippets locally, without calling the
// snippet endpoint. It is the fallback when the endpoint is down and
// the only generator for the bundled mock dataset. Safe for use from
// concurrent fetches.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator() *Generator {
	return NewGeneratorWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewGeneratorWithRand allows tests to pin the randomized target length.
func NewGeneratorWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Snippet rewrites raw article text into a short informal summary.
// The output targets a randomized 400 to 600 character length, cut at a
// sentence boundary when one falls late enough in the text.
func (g *Generator) Snippet(text string) string {
	if strings.TrimSpace(text) == "" {
		return emptyContentPlaceholder
	}

	cleaned := g.rewrite(text)
	g.mu.Lock()
	target := g.rng.IntN(targetLengthSpan) + targetLengthMin
	g.mu.Unlock()

	runes := []rune(cleaned)
	if len(runes) <= target {
		return cleaned
	}

	truncated := runes[:target]

	if end := lastIndexAny(truncated, ".!?"); float64(end) > float64(target)*0.7 {
		return strings.TrimSpace(string(truncated[:end+1]))
	}
	if space := lastIndexAny(truncated, " "); float64(space) > float64(target)*0.85 {
		return strings.TrimSpace(string(truncated[:space])) + "."
	}
	return strings.TrimSpace(string(truncated)) + "."
}

func (g *Generator) rewrite(text string) string {
	cleaned := leadInPattern.ReplaceAllString(text, "")
	cleaned = leadingBullet.ReplaceAllString(cleaned, "")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return emptyCleanedPlaceholder
	}

	for _, sub := range informalSubstitutions {
		cleaned = sub.pattern.ReplaceAllString(cleaned, sub.replacement)
	}

	if !containsAnyOf(cleaned, causalConnectors) && len([]rune(cleaned)) < targetLengthMin {
		cleaned += contextSentence
	}
	return cleaned
}

func containsAnyOf(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

func lastIndexAny(runes []rune, chars string) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if strings.ContainsRune(chars, runes[i]) {
			return i
		}
	}
	return -1
}
