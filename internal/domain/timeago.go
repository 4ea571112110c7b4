package domain

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders a published-at timestamp as the Spanish relative
// display string used on feed cards ("Hace 15 min", "Hace 2 horas").
func FormatTimeAgo(now, publishedAt time.Time) string {
	minutes := int(now.Sub(publishedAt).Minutes())
	if minutes < 1 {
		return "Ahora"
	}
	if minutes < 60 {
		return fmt.Sprintf("Hace %d min", minutes)
	}
	if minutes < 1440 {
		hours := minutes / 60
		return fmt.Sprintf("Hace %d hora%s", hours, plural(hours))
	}
	days := minutes / 1440
	return fmt.Sprintf("Hace %d día%s", days, plural(days))
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
