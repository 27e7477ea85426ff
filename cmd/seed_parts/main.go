// seed_parts genera un script SQL para poblar el maestro de piezas (parts) a partir
// del CSV exportado por el sistema de compras.
//
// Uso: go run ./cmd/seed_parts [-enc sjis|utf8] [-out ruta.sql] partes.csv
// Columnas: part_code, specification, category, supplier, unit_price, lead_time_days, safety_stock
// Por defecto escribe internal/infrastructure/postgres/migrations/002_seed_parts.sql
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
)

const columns = 7

func main() {
	enc := flag.String("enc", "sjis", "codificación del CSV: sjis | utf8")
	outPath := flag.String("out", "", "archivo SQL de salida")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_parts [-enc sjis|utf8] [-out ruta.sql] partes.csv")
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r, err := decodeReader(f, *enc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	parts, err := parseParts(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	if *outPath == "" {
		*outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_parts.sql")
	}
	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, parts); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d piezas\n", *outPath, len(parts))
}

// decodeReader los CSV de compras salen en Shift_JIS desde Excel; utf8 acepta BOM.
func decodeReader(r io.Reader, enc string) (io.Reader, error) {
	switch strings.ToLower(enc) {
	case "sjis", "shift_jis", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	case "utf8", "utf-8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", enc)
	}
}

func parseParts(r io.Reader) ([]entity.Part, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns
	cr.TrimLeadingSpace = true

	var parts []entity.Part
	seen := make(map[string]int)
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		// Cabecera opcional.
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "part_code") {
			continue
		}
		p, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		// Si un código se repite gana la última fila.
		if i, ok := seen[p.PartCode]; ok {
			parts[i] = p
			continue
		}
		seen[p.PartCode] = len(parts)
		parts = append(parts, p)
	}
	return parts, nil
}

func parseRecord(rec []string) (entity.Part, error) {
	code := planning.NormalizeCode(rec[0])
	if code == "" {
		return entity.Part{}, errors.New("part_code vacío")
	}
	price, err := decimal.NewFromString(planning.NormalizeCode(orZero(rec[4])))
	if err != nil {
		return entity.Part{}, fmt.Errorf("unit_price %q: %w", rec[4], err)
	}
	lead, err := strconv.Atoi(planning.NormalizeCode(orZero(rec[5])))
	if err != nil || lead < 0 {
		return entity.Part{}, fmt.Errorf("lead_time_days inválido %q", rec[5])
	}
	safety, err := decimal.NewFromString(planning.NormalizeCode(orZero(rec[6])))
	if err != nil || safety.IsNegative() {
		return entity.Part{}, fmt.Errorf("safety_stock inválido %q", rec[6])
	}
	return entity.Part{
		PartCode:      code,
		Specification: strings.TrimSpace(rec[1]),
		Category:      strings.TrimSpace(rec[2]),
		Supplier:      strings.TrimSpace(rec[3]),
		UnitPrice:     price,
		LeadTimeDays:  lead,
		SafetyStock:   safety,
		IsActive:      true,
	}, nil
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

func writeSQL(w io.Writer, parts []entity.Part) error {
	var b strings.Builder
	b.WriteString("-- Maestro de piezas\n")
	b.WriteString("-- Generado por cmd/seed_parts\n\n")
	if len(parts) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO parts (part_code, specification, category, supplier, unit_price, lead_time_days, safety_stock) VALUES\n")
	for i, p := range parts {
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', %s, %d, %s)",
			escapeSQL(p.PartCode), escapeSQL(p.Specification), escapeSQL(p.Category), escapeSQL(p.Supplier),
			p.UnitPrice.String(), p.LeadTimeDays, p.SafetyStock.String())
		if i < len(parts)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	b.WriteString("ON CONFLICT (part_code) DO UPDATE SET\n")
	b.WriteString("  specification = EXCLUDED.specification,\n")
	b.WriteString("  category = EXCLUDED.category,\n")
	b.WriteString("  supplier = EXCLUDED.supplier,\n")
	b.WriteString("  unit_price = EXCLUDED.unit_price,\n")
	b.WriteString("  lead_time_days = EXCLUDED.lead_time_days,\n")
	b.WriteString("  safety_stock = EXCLUDED.safety_stock,\n")
	b.WriteString("  updated_at = now();\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
