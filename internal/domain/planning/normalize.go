package planning

import (
	"strings"
	"time"

	"golang.org/x/text/width"
)

// DateLayout formato de fechas de plan (start_date).
const DateLayout = "2006-01-02"

// NormalizeCode convierte caracteres de ancho completo a medio ancho y recorta espacios.
// Los códigos ingresados desde teclados japoneses suelen llegar como "ＰＲ－００１".
func NormalizeCode(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// ParseDate interpreta una fecha YYYY-MM-DD (se aceptan dígitos de ancho completo).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, NormalizeCode(s))
}
