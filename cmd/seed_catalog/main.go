// seed_catalog genera un script SQL para cargar el catálogo de recompensas
// a partir de un XML exportado por el área de bienestar (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee catalogo.xml y escribe catalog_seed.sql en el directorio actual.
//
// El id de cada producto se deriva del SKU, así que volver a ejecutar el script
// actualiza los productos existentes sin tocar su stock.
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogNamespace fija la derivación SKU -> UUID.
var catalogNamespace = uuid.MustParse("6f1c2b9e-8f0a-4d5b-9c3e-2a7d4e1f0b11")

type catalogo struct {
	Productos []producto `xml:"producto"`
}

type producto struct {
	SKU         string `xml:"sku,attr"`
	Nombre      string `xml:"nombre,attr"`
	Categoria   string `xml:"categoria,attr"`
	Puntos      string `xml:"puntos,attr"`
	Stock       string `xml:"stock,attr"`
	Activo      string `xml:"activo,attr"`
	Descripcion string `xml:"descripcion"`
	Imagen      string `xml:"imagen"`
}

type seedProduct struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Category    string
	ImageURL    string
	PointsCost  int
	Stock       int
	IsActive    bool
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := "catalog_seed.sql"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	products, skipped, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, products); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d descartados\n", outPath, len(products), len(skipped))
	for _, s := range skipped {
		fmt.Printf("  descartado: %s\n", s)
	}
}

// parseCatalog decodifica el XML y devuelve los productos válidos ordenados por SKU.
// Las filas inválidas se reportan en skipped con el motivo.
func parseCatalog(r io.Reader) (products []seedProduct, skipped []string, err error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToUpper(charset) {
		case "ISO-8859-1", "ISO8859-1", "LATIN1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		case "WINDOWS-1252", "CP1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	for _, p := range c.Productos {
		sku := strings.TrimSpace(p.SKU)
		name := strings.TrimSpace(p.Nombre)
		switch {
		case sku == "" || name == "":
			skipped = append(skipped, fmt.Sprintf("%q sin sku o nombre", sku+name))
			continue
		case seen[sku]:
			skipped = append(skipped, sku+": sku repetido")
			continue
		}
		points, err := strconv.Atoi(strings.TrimSpace(p.Puntos))
		if err != nil || points <= 0 {
			skipped = append(skipped, sku+": puntos inválidos")
			continue
		}
		stock := 0
		if s := strings.TrimSpace(p.Stock); s != "" {
			stock, err = strconv.Atoi(s)
			if err != nil || stock < 0 {
				skipped = append(skipped, sku+": stock inválido")
				continue
			}
		}
		active := true
		if a := strings.TrimSpace(p.Activo); a != "" {
			active = a == "1" || strings.EqualFold(a, "true") || strings.EqualFold(a, "si") || strings.EqualFold(a, "sí")
		}
		seen[sku] = true
		products = append(products, seedProduct{
			ID:          uuid.NewSHA1(catalogNamespace, []byte(sku)).String(),
			SKU:         sku,
			Name:        name,
			Description: strings.TrimSpace(p.Descripcion),
			Category:    strings.TrimSpace(p.Categoria),
			ImageURL:    strings.TrimSpace(p.Imagen),
			PointsCost:  points,
			Stock:       stock,
			IsActive:    active,
		})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].SKU < products[j].SKU })
	return products, skipped, nil
}

// writeSQL escribe un INSERT idempotente por producto. El stock solo se fija al insertar.
func writeSQL(w io.Writer, products []seedProduct) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de recompensas\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	b.WriteString("BEGIN;\n\n")
	for _, p := range products {
		fmt.Fprintf(&b, "-- %s\n", p.SKU)
		b.WriteString("INSERT INTO products (id, name, description, category, image_url, points_cost, stock, is_active)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', %d, %d, %t)\n",
			p.ID, escapeSQL(p.Name), escapeSQL(p.Description), escapeSQL(p.Category), escapeSQL(p.ImageURL),
			p.PointsCost, p.Stock, p.IsActive)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,\n")
		b.WriteString("  category = EXCLUDED.category, image_url = EXCLUDED.image_url,\n")
		b.WriteString("  points_cost = EXCLUDED.points_cost, is_active = EXCLUDED.is_active, updated_at = NOW();\n\n")
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
