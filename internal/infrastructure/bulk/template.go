package bulk

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var sampleRows = map[EntityType][]map[string]string{
	EntityProducts: {
		{
			"name": "Heavy Duty Drill", "brand": "FastDrill", "category": "Tools",
			"description": "Professional grade drilling equipment", "featured": "false",
			"images": "https://example.com/image1.jpg,https://example.com/image2.jpg",
			"size": "13mm", "packaging": "Box", "estimated_price_npr": "5000", "stock_status": "In Stock",
		},
		{
			"name": "Heavy Duty Drill", "brand": "FastDrill", "category": "Tools",
			"description": "Professional grade drilling equipment", "featured": "false",
			"images": "https://example.com/image1.jpg,https://example.com/image2.jpg",
			"size": "16mm", "packaging": "Box", "estimated_price_npr": "6500", "stock_status": "Low Stock",
		},
		{
			"name": "Industrial Hammer", "brand": "Spider", "category": "Tools",
			"description": "Heavy construction hammer", "featured": "true",
			"images": "https://example.com/hammer.jpg",
			"size": "Large", "packaging": "Unit", "estimated_price_npr": "1200", "stock_status": "In Stock",
		},
	},
	EntityBrands: {
		{
			"name": "NewBrand", "description": "Innovative tool manufacturer",
			"logo": "https://example.com/newbrand-logo.jpg", "origin_country": "Germany",
			"established_year": "2020", "specialty": "Power Tools", "active": "true",
		},
	},
	EntityShipments: {
		{
			"tracking_number": "JMI-12345-CN", "origin_country": "China", "status": "In Transit",
			"eta_date": "2024-09-15", "product_names": "Heavy Duty Drill,Industrial Hammer", "port_name": "Kolkata",
		},
		{
			"tracking_number": "JMI-67890-IN", "origin_country": "India", "status": "Booked",
			"eta_date": "2024-09-10", "product_names": "Gorkha Cement Mixer", "port_name": "Birgunj",
		},
	},
}

func templateRows(entity EntityType) (Schema, [][]string, error) {
	schema, err := SchemaFor(entity)
	if err != nil {
		return Schema{}, nil, err
	}
	columns := schema.Columns()
	rows := [][]string{columns}
	for _, sample := range sampleRows[entity] {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = sample[c]
		}
		rows = append(rows, row)
	}
	return schema, rows, nil
}

// TemplateCSV renders the header and sample rows of an entity type
func TemplateCSV(entity EntityType) ([]byte, error) {
	_, rows, err := templateRows(entity)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the same template as a workbook with one sheet
func TemplateXLSX(entity EntityType) ([]byte, error) {
	schema, rows, err := templateRows(entity)
	if err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := string(schema.Entity)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateFilename returns the download name for a template
func TemplateFilename(entity EntityType, format Format) string {
	return fmt.Sprintf("%s_template.%s", entity, format)
}
