package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPriorityScore(t *testing.T) {
	cases := []struct {
		name    string
		article RawArticle
		want    int
	}{
		{
			name:    "breaking_flag_wins_over_text",
			article: RawArticle{Title: "Apple presenta el iPhone", IsBreaking: true},
			want:    1000,
		},
		{
			name:    "breaking_keyword_in_title",
			article: RawArticle{Title: "ÚLTIMO MOMENTO: sismo en Salta"},
			want:    1000,
		},
		{
			name:    "milei_in_title",
			article: RawArticle{Title: "Milei anuncia nuevas medidas"},
			want:    900,
		},
		{
			name:    "elections_in_content",
			article: RawArticle{Title: "Panorama", Description: "La campaña electoral entra en su recta final"},
			want:    850,
		},
		{
			name:    "economy_in_category_field",
			article: RawArticle{Title: "Informe del día", Category: "Economía"},
			want:    800,
		},
		{
			name:    "tech_keyword",
			article: RawArticle{Title: "OpenAI lanza un nuevo modelo"},
			want:    700,
		},
		{
			name:    "sports_keyword",
			article: RawArticle{Title: "Messi jugará la Copa América"},
			want:    650,
		},
		{
			name:    "international_keyword",
			article: RawArticle{Title: "Tensión entre China y EEUU"},
			want:    600,
		},
		{
			name:    "crypto_keyword",
			article: RawArticle{Title: "Bitcoin supera los 70.000 dólares"},
			want:    550,
		},
		{
			name:    "no_match_gets_default",
			article: RawArticle{Title: "Festival de jardinería en Rosario", Category: "eventos"},
			want:    400,
		},
		{
			name: "description_preferred_over_content",
			article: RawArticle{
				Title:       "Sin señales",
				Description: "nada relevante aquí",
				Content:     "bitcoin al alza",
			},
			want: 400,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PriorityScore(tc.article))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	cases := []struct {
		name    string
		article RawArticle
		want    string
	}{
		{
			name:    "breaking_flag",
			article: RawArticle{Title: "lo que sea", IsBreaking: true},
			want:    "ÚLTIMO MOMENTO",
		},
		{
			name:    "milei",
			article: RawArticle{Title: "Javier Milei habló en cadena nacional"},
			want:    "MILEI",
		},
		{
			name:    "elections",
			article: RawArticle{Title: "Se confirman los candidatos para el ballotage"},
			want:    "ELECCIONES2025",
		},
		{
			name:    "politics_category_field",
			article: RawArticle{Title: "Sesión en el recinto", Category: "Política"},
			want:    "POLÍTICA",
		},
		{
			name:    "economy",
			article: RawArticle{Title: "El dólar blue alcanza un récord"},
			want:    "ECONOMÍA",
		},
		{
			name:    "tech",
			article: RawArticle{Title: "Apple presenta su nueva generación"},
			want:    "TECNOLOGÍA",
		},
		{
			name:    "culture_from_category_field",
			article: RawArticle{Title: "Nueva muestra", Category: "Cultura"},
			want:    "CULTURA",
		},
		{
			name:    "health_from_category_field",
			article: RawArticle{Title: "Campaña de vacunación", Category: "Salud"},
			want:    "SALUD",
		},
		{
			name:    "raw_category_uppercased_fallback",
			article: RawArticle{Title: "Clima del fin de semana", Category: "clima"},
			want:    "CLIMA",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CategoryLabel(tc.article))
		})
	}
}

func TestMatchesAnyCategory(t *testing.T) {
	articles := []FeedArticle{
		{ID: "1", Title: "Apple presenta el iPhone 16", Label: "TECNOLOGÍA", Content: "La compañía reveló el nuevo procesador"},
		{ID: "2", Title: "El dólar blue sube otra vez", Label: "ECONOMÍA", Content: "La divisa superó los $1.200"},
		{ID: "3", Title: "Messi vuelve al once titular", Label: "DEPORTES", Content: "El capitán jugará el torneo"},
		{ID: "4", Title: "Avances en inteligencia artificial", Label: "SOCIEDAD", Content: "Un informe sobre IA en escuelas"},
		{ID: "5", Title: "Festival de cine en Mar del Plata", Label: "CULTURA", Content: "Se proyectarán cien películas"},
	}

	selected := []string{"Tecnología"}
	var matched []string
	for _, a := range articles {
		if MatchesAnyCategory(a, selected) {
			matched = append(matched, a.ID)
		}
	}

	// Articles 1 and 4 match the tech keyword set (label / title keywords);
	// economy, sports and culture must be excluded.
	assert.Equal(t, []string{"1", "4"}, matched)

	for _, a := range articles {
		assert.True(t, MatchesAnyCategory(a, nil), "empty selection matches everything")
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"under_a_minute", 30 * time.Second, "Ahora"},
		{"minutes", 15 * time.Minute, "Hace 15 min"},
		{"one_hour", 1 * time.Hour, "Hace 1 hora"},
		{"hours", 3 * time.Hour, "Hace 3 horas"},
		{"one_day", 25 * time.Hour, "Hace 1 día"},
		{"days", 72 * time.Hour, "Hace 3 días"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatTimeAgo(now, now.Add(-tc.ago)))
		})
	}
}

func TestMatchesCategoryPoliticsIncludesMilei(t *testing.T) {
	article := FeedArticle{
		ID:      "1",
		Title:   "Javier Milei anuncia un paquete de reformas",
		Label:   "MILEI",
		Content: "El anuncio llegó desde la Casa Rosada",
	}

	cases := []struct {
		name     string
		selected string
		want     bool
	}{
		{"accented_politica", "Política", true},
		{"unaccented_politica", "politica", true},
		{"unrelated_selection", "Deportes", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesCategory(article, tc.selected))
		})
	}
}
