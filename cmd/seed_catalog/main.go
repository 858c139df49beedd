// seed_catalog genera un script SQL para poblar el catálogo global de productos
// a partir de un CSV de proveedor.
//
// Uso: go run ./cmd/seed_catalog [-latin1] [-o salida.sql] catalogo.csv
// Columnas: sku;name;category;vendor;list_price;description (la primera fila es cabecera).
// Los IDs se derivan del SKU, así que volver a correrlo actualiza en lugar de duplicar.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// catalogNamespace namespace UUIDv5 para los IDs de productos globales.
var catalogNamespace = uuid.MustParse("6f1c7d3e-2b8a-4c55-9e0f-8a4d2c1b7e90")

type seedProduct struct {
	ID          string
	SKU         string
	Name        string
	Category    string
	Vendor      string
	ListPrice   *decimal.Decimal
	Description string
}

func main() {
	latin1 := flag.Bool("latin1", false, "El CSV viene en ISO-8859-1 (exportaciones de Excel)")
	outPath := flag.String("o", "", "Archivo de salida (por defecto stdout)")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-latin1] [-o salida.sql] catalogo.csv")
		os.Exit(2)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, err := parseCatalogCSV(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := writeSeedSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generados %d productos globales\n", len(products))
}

// parseCatalogCSV lee el CSV (separador ';' o ',') y normaliza los textos a NFC.
// Filas sin SKU o sin nombre se descartan; un SKU repetido conserva la última fila.
func parseCatalogCSV(r io.Reader, latin1 bool) ([]seedProduct, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = ';'
	if firstLine, _, _ := strings.Cut(text, "\n"); !strings.Contains(firstLine, ";") {
		cr.Comma = ','
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("CSV vacío")
	}

	bySKU := make(map[string]seedProduct)
	for i, row := range rows[1:] {
		col := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(norm.NFC.String(row[n]))
			}
			return ""
		}
		p := seedProduct{
			SKU:         col(0),
			Name:        col(1),
			Category:    col(2),
			Vendor:      col(3),
			Description: col(5),
		}
		if p.SKU == "" || p.Name == "" {
			continue
		}
		if s := col(4); s != "" {
			price, err := parsePrice(s)
			if err != nil {
				return nil, fmt.Errorf("fila %d: list_price %q: %w", i+2, s, err)
			}
			p.ListPrice = &price
		}
		p.ID = uuid.NewSHA1(catalogNamespace, []byte(p.SKU)).String()
		bySKU[p.SKU] = p
	}

	out := make([]seedProduct, 0, len(bySKU))
	for _, p := range bySKU {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// parsePrice acepta "1234.50", "1234,50" y "1.234,50".
func parsePrice(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, errors.New("precio negativo")
	}
	return d.Round(2), nil
}

func writeSeedSQL(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo global de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	for _, p := range products {
		price := "NULL"
		if p.ListPrice != nil {
			price = p.ListPrice.StringFixed(2)
		}
		b.WriteString("INSERT INTO products (id, scope, sku, name, description, category, vendor_name, list_price)\n")
		fmt.Fprintf(&b, "VALUES ('%s', 'global', '%s', '%s', '%s', '%s', '%s', %s)\n",
			p.ID, escapeSQL(p.SKU), escapeSQL(p.Name), escapeSQL(p.Description),
			escapeSQL(p.Category), escapeSQL(p.Vendor), price)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,\n")
		b.WriteString("    category = EXCLUDED.category, vendor_name = EXCLUDED.vendor_name,\n")
		b.WriteString("    list_price = EXCLUDED.list_price, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
