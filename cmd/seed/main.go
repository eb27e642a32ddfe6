package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/deviceshop/deviceshop-backend/config"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Columns: name, brand, price, image url. The first row is a header.
const (
	colName = iota
	colBrand
	colPrice
	colImageURL
	minColumns
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [-y]")
	}

	filePath := os.Args[1]
	assumeYes := len(os.Args) > 2 && os.Args[2] == "-y"

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gdb, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Products to import: %d (skipped rows: %d)\n", len(products), skipped)
	if len(products) == 0 {
		return
	}

	if !assumeYes {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	productService := service.NewProductService(gdb,
		repository.NewProductRepository(gdb),
		repository.NewPurchaseRepository(gdb),
	)
	imported, err := productService.ImportProducts(products)
	if err != nil {
		log.Fatal("Failed to import products:", err)
	}

	fmt.Printf("Import completed successfully! Total products imported: %d\n", imported)
}

func readProductsFromXLSX(filePath string) ([]service.ProductInput, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	return parseProductRows(rows[1:])
}

// parseProductRows skips rows that are too short or carry an unreadable price.
func parseProductRows(rows [][]string) ([]service.ProductInput, int, error) {
	var products []service.ProductInput
	skipped := 0

	for i, row := range rows {
		if len(row) < minColumns {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[colName])
		imageURL := strings.TrimSpace(row[colImageURL])
		if name == "" || imageURL == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseInt(strings.TrimSpace(row[colPrice]), 10, 64)
		if err != nil || price < 0 {
			fmt.Printf("Skipping row %d: invalid price %q\n", i+2, row[colPrice])
			skipped++
			continue
		}

		products = append(products, service.ProductInput{
			Name:     name,
			Brand:    strings.TrimSpace(row[colBrand]),
			Price:    price,
			ImageURL: imageURL,
		})
	}

	return products, skipped, nil
}
