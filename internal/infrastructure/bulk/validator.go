package bulk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMaxErrors caps the row errors kept in a result
const DefaultMaxErrors = 100

var (
	minInteger = decimal.NewFromInt(math.MinInt32)
	maxInteger = decimal.NewFromInt(math.MaxInt32)
)

// ParseInt reads an integer cell. Fractions are truncated and values outside
// the 32-bit range are rejected.
func ParseInt(raw string) (int, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	if !integerInRange(d) {
		return 0, fmt.Errorf("%s is out of range", raw)
	}
	return int(d.IntPart()), nil
}

func integerInRange(d decimal.Decimal) bool {
	d = d.Truncate(0)
	return !d.LessThan(minInteger) && !d.GreaterThan(maxInteger)
}

// RowResult is the outcome of validating one record
type RowResult struct {
	Index      int               `json:"index"`
	Row        int               `json:"row"`
	Values     map[string]string `json:"values"`
	Valid      bool              `json:"valid"`
	ErrorCount int               `json:"error_count"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// ValidationResult summarizes a validated upload
type ValidationResult struct {
	Entity      EntityType  `json:"entity"`
	TotalRows   int         `json:"total_rows"`
	ValidRows   int         `json:"valid_rows"`
	ErrorRows   int         `json:"error_rows"`
	Rows        []RowResult `json:"rows"`
	Errors      []RowError  `json:"errors"`
	TotalErrors int         `json:"total_errors"`
	IsTruncated bool        `json:"is_truncated,omitempty"`
	// UniqueProducts counts distinct product names among valid rows
	UniqueProducts int `json:"unique_products,omitempty"`
}

// IsValid returns true if no row failed
func (r *ValidationResult) IsValid() bool {
	return r.ErrorRows == 0
}

// ValidRecords returns the records that passed validation
func (r *ValidationResult) ValidRecords() []Record {
	out := make([]Record, 0, r.ValidRows)
	for _, row := range r.Rows {
		if row.Valid {
			out = append(out, Record{Row: row.Row, Values: row.Values})
		}
	}
	return out
}

// Validate checks every record against the schema: required fields, enum
// membership, numbers, booleans and dates. Errors beyond maxErrors are
// counted but not kept.
func Validate(records []Record, schema Schema, maxErrors int) *ValidationResult {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	errs := NewErrorCollection(maxErrors)
	result := &ValidationResult{
		Entity:    schema.Entity,
		TotalRows: len(records),
		Rows:      make([]RowResult, 0, len(records)),
	}
	names := make(map[string]struct{})

	for i, rec := range records {
		rowErrs := validateRecord(rec, schema)
		for _, e := range rowErrs {
			errs.Add(e)
		}
		rr := RowResult{
			Index:      i,
			Row:        rec.Row,
			Values:     rec.Values,
			Valid:      len(rowErrs) == 0,
			ErrorCount: len(rowErrs),
			Warnings:   warningsFor(rec, schema),
		}
		if rr.Valid {
			result.ValidRows++
			if schema.Entity == EntityProducts {
				names[rec.Get("name")] = struct{}{}
			}
		} else {
			result.ErrorRows++
		}
		result.Rows = append(result.Rows, rr)
	}

	result.Errors = errs.Errors()
	result.TotalErrors = errs.TotalCount()
	result.IsTruncated = errs.IsTruncated()
	if schema.Entity == EntityProducts {
		result.UniqueProducts = len(names)
	} else {
		result.UniqueProducts = result.ValidRows
	}
	return result
}

func validateRecord(rec Record, schema Schema) []RowError {
	var errs []RowError
	add := func(f FieldSpec, code, msg, value string) {
		errs = append(errs, RowError{Row: rec.Row, Column: f.Name, Code: code, Message: msg, Value: value})
	}

	for _, f := range schema.Fields {
		value := rec.Get(f.Name)
		if value == "" {
			if f.Required {
				add(f, ErrCodeRequiredField, "Missing required field: "+f.Name, "")
			}
			continue
		}

		switch f.Type {
		case TypeEnum:
			if !contains(f.Enum, value) {
				add(f, ErrCodeInvalidEnum, fmt.Sprintf("Invalid value for %s: '%s'. Must be one of: %s",
					f.Name, value, strings.Join(f.Enum, ", ")), value)
			}
		case TypeNumber:
			d, err := decimal.NewFromString(value)
			switch {
			case err != nil && f.NonNegative:
				add(f, ErrCodeInvalidType, fmt.Sprintf("Invalid value for %s: '%s'. Must be a positive number.", f.Name, value), value)
			case err != nil:
				add(f, ErrCodeInvalidType, fmt.Sprintf("Invalid value for %s: '%s'. Must be a number.", f.Name, value), value)
			case f.NonNegative && d.IsNegative():
				add(f, ErrCodeInvalidRange, fmt.Sprintf("Invalid value for %s: '%s'. Must be a positive number.", f.Name, value), value)
			case f.Integer && !integerInRange(d):
				add(f, ErrCodeInvalidRange, fmt.Sprintf("Invalid value for %s: '%s'. Number is out of range.", f.Name, value), value)
			}
		case TypeBoolean:
			if _, ok := ParseBool(value); !ok {
				add(f, ErrCodeInvalidType, fmt.Sprintf("Invalid value for %s: '%s'. Must be true or false.", f.Name, value), value)
			}
		case TypeDate:
			if _, err := time.Parse(DateLayout, value); err != nil {
				add(f, ErrCodeInvalidDate, fmt.Sprintf("Invalid date format for %s: '%s'. Must be YYYY-MM-DD.", f.Name, value), value)
			}
		}
	}
	return errs
}

func warningsFor(rec Record, schema Schema) []string {
	if _, ok := schema.Field("slug"); !ok {
		return nil
	}
	if rec.Get("slug") != "" || rec.Get("name") == "" {
		return nil
	}
	noun := "product"
	if schema.Entity == EntityBrands {
		noun = "brand"
	}
	return []string{"Slug will be auto-generated from " + noun + " name"}
}

// ParseBool accepts true/false, 1/0, yes/no and y/n in any case
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	}
	return false, false
}

// SplitList splits a comma-separated cell, dropping blanks
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
