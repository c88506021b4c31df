// seed genera un script SQL para poblar el maestro de productos a partir de
// un CSV exportado de un ERP legado (codificado en ISO-8859-1, con tildes y
// eñes en nombres y unidades).
//
// Columnas esperadas: sku,nombre,descripcion,unidad,costo,precio
//
// Uso: go run ./cmd/seed [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Escribe: scripts/seed_products.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports del ERP vienen en ISO-8859-1
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "scripts", "seed_products.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Maestro de productos\n")
	out.WriteString("-- Generado desde el export CSV del ERP\n\n")

	count := 0
	for i, rec := range records {
		if i == 0 {
			continue // cabecera
		}
		sku := strings.TrimSpace(rec[0])
		nombre := strings.TrimSpace(rec[1])
		if sku == "" || nombre == "" {
			continue
		}
		descripcion := strings.TrimSpace(rec[2])
		unidad := strings.TrimSpace(rec[3])
		if unidad == "" {
			unidad = "unidad"
		}
		costo := strings.TrimSpace(rec[4])
		if costo == "" {
			costo = "0"
		}
		precio := strings.TrimSpace(rec[5])
		if precio == "" {
			precio = "0"
		}

		fmt.Fprintf(out, "INSERT INTO products (id, sku_code, name, description, unit_of_measure, cost, price, active)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', %s, %s, TRUE)\n",
			escapeSQL(sku), escapeSQL(nombre), escapeSQL(descripcion), escapeSQL(unidad), costo, precio)
		out.WriteString("ON CONFLICT (sku_code) DO UPDATE SET name = EXCLUDED.name, cost = EXCLUDED.cost, price = EXCLUDED.price;\n")
		count++
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, count)
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
