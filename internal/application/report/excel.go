package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sysstock/backend/internal/domain/identity"
	"github.com/xuri/excelize/v2"
)

const (
	salesSheet  = "Sales"
	kardexSheet = "Kardex"
)

// ExportSales builds an xlsx workbook with one row per sale line in the
// range, followed by a totals row.
func (s *ReportService) ExportSales(ctx context.Context, scope identity.AccessScope, filter SalesReportFilter) (*excelize.File, error) {
	from, to, err := normalizeRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	saleRows, err := s.branchSales(ctx, scope, filter.BranchID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), salesSheet)

	headers := []string{"Date", "Sale ID", "Product", "Quantity", "Unit Price", "Amount"}
	if err := writeRow(f, salesSheet, 1, headers); err != nil {
		f.Close()
		return nil, err
	}

	row := 2
	total := 0.0
	for _, sale := range saleRows {
		for _, item := range sale.Items {
			amount, _ := item.Amount().Float64()
			unitPrice, _ := item.UnitPrice.Float64()
			values := []interface{}{
				sale.CreatedAt.Format("2006-01-02 15:04"),
				sale.ID.String(),
				item.ProductName,
				item.Quantity,
				unitPrice,
				amount,
			}
			if err := writeRow(f, salesSheet, row, values); err != nil {
				f.Close()
				return nil, err
			}
			total += amount
			row++
		}
	}

	if err := writeRow(f, salesSheet, row, []interface{}{"", "", "", "", "Total", total}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// ExportKardex builds an xlsx workbook with the kardex of one product
func (s *ReportService) ExportKardex(ctx context.Context, scope identity.AccessScope, productID uuid.UUID, filter KardexReportFilter) (*excelize.File, error) {
	rows, err := s.Kardex(ctx, scope, productID, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), kardexSheet)

	headers := []string{"Date", "Kind", "Quantity", "Reason", "Unit Cost", "Balance"}
	if err := writeRow(f, kardexSheet, 1, headers); err != nil {
		f.Close()
		return nil, err
	}

	for i, entry := range rows {
		var unitCost interface{}
		if entry.UnitCost != nil {
			unitCost, _ = entry.UnitCost.Float64()
		}
		values := []interface{}{
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Kind,
			entry.Quantity,
			entry.Reason,
			unitCost,
			entry.Balance,
		}
		if err := writeRow(f, kardexSheet, i+2, values); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func writeRow[T any](f *excelize.File, sheet string, row int, values []T) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
