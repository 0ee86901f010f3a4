package refsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// refsync loads a client's reference-data workbook into the registry tables
// the validation engine reads. One sheet per registry; the first row is a
// header. Rows present in the workbook are upserted active; the engine
// itself never writes these tables.

const (
	SheetBrokerDealers  = "BrokerDealers"
	SheetFirmEntities   = "FirmEntities"
	SheetAccounts       = "AccountMappings"
	SheetCurrencyCodes  = "CurrencyCodes"
	SheetInstruments    = "InstrumentMappings"
)

type ImportSummary struct {
	BrokerDealers int
	FirmEntities  int
	Accounts      int
	Currencies    int
	Instruments   int
}

// ImportWorkbook upserts every registry sheet for the given client inside
// one transaction.
func ImportWorkbook(ctx context.Context, userId uint, path string) (ImportSummary, error) {
	var summary ImportSummary

	f, err := excelize.OpenFile(path)
	if err != nil {
		return summary, err
	}
	defer f.Close()

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.BrokerDealers, err = importBrokerDealers(ctx, tx, f, userId); err != nil {
			return err
		}
		if summary.FirmEntities, err = importFirmEntities(ctx, tx, f, userId); err != nil {
			return err
		}
		if summary.Accounts, err = importAccounts(ctx, tx, f, userId); err != nil {
			return err
		}
		if summary.Currencies, err = importCurrencies(ctx, tx, f, userId); err != nil {
			return err
		}
		if summary.Instruments, err = importInstruments(ctx, tx, f, userId); err != nil {
			return err
		}
		return nil
	})
	return summary, err
}

// sheetRows returns the data rows of a sheet, header stripped. A missing
// sheet is not an error: workbooks may carry only the registries they
// maintain.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func importBrokerDealers(ctx context.Context, tx *gorm.DB, f *excelize.File, userId uint) (int, error) {
	rows, err := sheetRows(f, SheetBrokerDealers)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		clientID := cell(row, 0)
		if clientID == "" {
			return count, fmt.Errorf("%s row %d: client id is required", SheetBrokerDealers, i+2)
		}
		membershipType := cell(row, 2)
		if membershipType != models.MembershipTypeExchange && membershipType != models.MembershipTypeBroker {
			return count, fmt.Errorf("%s row %d: unknown membership type %q", SheetBrokerDealers, i+2, membershipType)
		}
		record := models.BrokerDealer{
			UserId:         userId,
			ClientID:       clientID,
			Name:           cell(row, 1),
			MembershipType: membershipType,
			IsActive:       utils.NewTrue(),
		}
		if err := upsert(ctx, tx, &models.BrokerDealer{}, "user_id = ? AND client_id = ?", []interface{}{userId, clientID}, &record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importFirmEntities(ctx context.Context, tx *gorm.DB, f *excelize.File, userId uint) (int, error) {
	rows, err := sheetRows(f, SheetFirmEntities)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		firmID := cell(row, 0)
		if firmID == "" {
			return count, fmt.Errorf("%s row %d: firm id is required", SheetFirmEntities, i+2)
		}
		record := models.FirmEntity{
			UserId:   userId,
			FirmID:   firmID,
			Name:     cell(row, 1),
			IsActive: utils.NewTrue(),
		}
		if err := upsert(ctx, tx, &models.FirmEntity{}, "user_id = ? AND firm_id = ?", []interface{}{userId, firmID}, &record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importAccounts(ctx context.Context, tx *gorm.DB, f *excelize.File, userId uint) (int, error) {
	rows, err := sheetRows(f, SheetAccounts)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		accountNo := cell(row, 0)
		if accountNo == "" {
			return count, fmt.Errorf("%s row %d: account no is required", SheetAccounts, i+2)
		}
		record := models.AccountMapping{
			UserId:      userId,
			AccountNo:   accountNo,
			AccountType: cell(row, 1),
			IsActive:    utils.NewTrue(),
		}
		if err := upsert(ctx, tx, &models.AccountMapping{}, "user_id = ? AND account_no = ?", []interface{}{userId, accountNo}, &record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importCurrencies(ctx context.Context, tx *gorm.DB, f *excelize.File, userId uint) (int, error) {
	rows, err := sheetRows(f, SheetCurrencyCodes)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		code := cell(row, 0)
		if len(code) != 3 {
			return count, fmt.Errorf("%s row %d: invalid currency code %q", SheetCurrencyCodes, i+2, code)
		}
		record := models.CurrencyCode{
			UserId:   userId,
			Code:     strings.ToUpper(code),
			Name:     cell(row, 1),
			IsActive: utils.NewTrue(),
		}
		if err := upsert(ctx, tx, &models.CurrencyCode{}, "user_id = ? AND code = ?", []interface{}{userId, record.Code}, &record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func importInstruments(ctx context.Context, tx *gorm.DB, f *excelize.File, userId uint) (int, error) {
	rows, err := sheetRows(f, SheetInstruments)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		instrumentID := cell(row, 0)
		if instrumentID == "" {
			return count, fmt.Errorf("%s row %d: instrument id is required", SheetInstruments, i+2)
		}
		record := models.InstrumentMapping{
			UserId:       userId,
			InstrumentID: instrumentID,
			Symbol:       cell(row, 1),
			IsActive:     utils.NewTrue(),
		}
		if err := upsert(ctx, tx, &models.InstrumentMapping{}, "user_id = ? AND instrument_id = ?", []interface{}{userId, instrumentID}, &record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func upsert(ctx context.Context, tx *gorm.DB, model interface{}, cond string, args []interface{}, record interface{}) error {
	res := tx.WithContext(ctx).Model(model).Where(cond, args...).Updates(record)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	err := tx.WithContext(ctx).Create(record).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}
